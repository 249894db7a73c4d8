package models

// Data types GitHub reports for ProjectV2 fields. Anything else is passed
// through as-is by the coercion engine.
const (
	DataTypeNumber       = "NUMBER"
	DataTypeDate         = "DATE"
	DataTypeSingleSelect = "SINGLE_SELECT"
	DataTypeIteration    = "ITERATION"
	DataTypeText         = "TEXT"
)

type Field struct {
	Id       string
	Name     string
	DataType string
}

type FieldOption struct {
	Id   string
	Name string
}

type Iteration struct {
	Id    string
	Title string
}
