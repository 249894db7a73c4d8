package models

type Project struct {
	Id    string
	Title string
}

// ItemContent is nil for non-issue items (draft items, archived rows);
// those are skipped everywhere.
type ItemContent struct {
	Title  string
	Number int
}

type ProjectItem struct {
	Id      string
	Content *ItemContent
}
