package github

import (
	"fmt"
	"strconv"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/models"
)

const projectsQuery = `
query ($login: String!) {
  user(login: $login) {
    projectsV2(first: 50) {
      nodes {
        id
        title
      }
    }
  }
}`

// ProjectByTitle resolves a Projects v2 board by exact title among the
// owner's boards.
func (c *Client) ProjectByTitle(owner, title string) (*models.Project, error) {
	var data struct {
		User struct {
			ProjectsV2 struct {
				Nodes []struct {
					Id    string `json:"id"`
					Title string `json:"title"`
				} `json:"nodes"`
			} `json:"projectsV2"`
		} `json:"user"`
	}
	if err := c.graphql(projectsQuery, map[string]any{"login": owner}, &data); err != nil {
		return nil, fmt.Errorf("list projects (github): %w", err)
	}

	for _, node := range data.User.ProjectsV2.Nodes {
		if node.Title == title {
			return &models.Project{Id: node.Id, Title: node.Title}, nil
		}
	}
	return nil, &client.NotFoundError{Kind: "project", Name: title}
}

const projectItemsQuery = `
query ($projectId: ID!, $first: Int!, $after: String) {
  node(id: $projectId) {
    ... on ProjectV2 {
      items(first: $first, after: $after) {
        pageInfo {
          hasNextPage
          endCursor
        }
        nodes {
          id
          content {
            ... on Issue { title number }
          }
        }
      }
    }
  }
}`

// ProjectItems drains the board's item listing. Items whose content is not
// an issue come back with a nil Content and are skipped by callers.
func (c *Client) ProjectItems(projectId string) ([]models.ProjectItem, error) {
	items, err := Paginate(func(after *string) (Page[models.ProjectItem], error) {
		variables := map[string]any{"projectId": projectId, "first": c.pageSize}
		if after != nil {
			variables["after"] = *after
		}

		var data struct {
			Node struct {
				Items struct {
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
					Nodes []struct {
						Id      string `json:"id"`
						Content *struct {
							Title  string `json:"title"`
							Number int    `json:"number"`
						} `json:"content"`
					} `json:"nodes"`
				} `json:"items"`
			} `json:"node"`
		}
		if err := c.graphql(projectItemsQuery, variables, &data); err != nil {
			return Page[models.ProjectItem]{}, err
		}

		page := Page[models.ProjectItem]{
			HasNext:   data.Node.Items.PageInfo.HasNextPage,
			EndCursor: data.Node.Items.PageInfo.EndCursor,
		}
		for _, node := range data.Node.Items.Nodes {
			item := models.ProjectItem{Id: node.Id}
			// The Issue fragment leaves content empty for draft items.
			if node.Content != nil && node.Content.Title != "" {
				item.Content = &models.ItemContent{
					Title:  node.Content.Title,
					Number: node.Content.Number,
				}
			}
			page.Items = append(page.Items, item)
		}
		return page, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list project items (github): %w", err)
	}
	return items, nil
}

const projectFieldsQuery = `
query ($projectId: ID!) {
  node(id: $projectId) {
    ... on ProjectV2 {
      fields(first: 50) {
        nodes {
          ... on ProjectV2FieldCommon {
            id
            name
            dataType
          }
        }
      }
    }
  }
}`

func (c *Client) ProjectFields(projectId string) ([]models.Field, error) {
	var data struct {
		Node struct {
			Fields struct {
				Nodes []struct {
					Id       string `json:"id"`
					Name     string `json:"name"`
					DataType string `json:"dataType"`
				} `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}
	if err := c.graphql(projectFieldsQuery, map[string]any{"projectId": projectId}, &data); err != nil {
		return nil, fmt.Errorf("list project fields (github): %w", err)
	}

	fields := make([]models.Field, 0, len(data.Node.Fields.Nodes))
	for _, node := range data.Node.Fields.Nodes {
		fields = append(fields, models.Field{Id: node.Id, Name: node.Name, DataType: node.DataType})
	}
	return fields, nil
}

const fieldOptionsQuery = `
query ($fieldId: ID!) {
  node(id: $fieldId) {
    ... on ProjectV2SingleSelectField {
      options {
        id
        name
      }
    }
  }
}`

func (c *Client) FieldOptions(fieldId string) ([]models.FieldOption, error) {
	var data struct {
		Node struct {
			Options []struct {
				Id   string `json:"id"`
				Name string `json:"name"`
			} `json:"options"`
		} `json:"node"`
	}
	if err := c.graphql(fieldOptionsQuery, map[string]any{"fieldId": fieldId}, &data); err != nil {
		return nil, fmt.Errorf("list field options (github): %w", err)
	}

	options := make([]models.FieldOption, 0, len(data.Node.Options))
	for _, o := range data.Node.Options {
		options = append(options, models.FieldOption{Id: o.Id, Name: o.Name})
	}
	return options, nil
}

const fieldIterationsQuery = `
query ($fieldId: ID!) {
  node(id: $fieldId) {
    ... on ProjectV2IterationField {
      configuration {
        iterations {
          id
          title
        }
      }
    }
  }
}`

func (c *Client) FieldIterations(fieldId string) ([]models.Iteration, error) {
	var data struct {
		Node struct {
			Configuration struct {
				Iterations []struct {
					Id    string `json:"id"`
					Title string `json:"title"`
				} `json:"iterations"`
			} `json:"configuration"`
		} `json:"node"`
	}
	if err := c.graphql(fieldIterationsQuery, map[string]any{"fieldId": fieldId}, &data); err != nil {
		return nil, fmt.Errorf("list field iterations (github): %w", err)
	}

	iterations := make([]models.Iteration, 0, len(data.Node.Configuration.Iterations))
	for _, it := range data.Node.Configuration.Iterations {
		iterations = append(iterations, models.Iteration{Id: it.Id, Title: it.Title})
	}
	return iterations, nil
}

const updateFieldValueMutation = `
mutation ($input: UpdateProjectV2ItemFieldValueInput!) {
  updateProjectV2ItemFieldValue(input: $input) {
    projectV2Item {
      id
    }
  }
}`

// UpdateItemFieldValue sets one typed field value on one board item. The
// value is the payload produced by the coercion engine.
func (c *Client) UpdateItemFieldValue(projectId, itemId, fieldId string, value any) error {
	input := map[string]any{
		"projectId": projectId,
		"itemId":    itemId,
		"fieldId":   fieldId,
		"value":     value,
	}
	if err := c.graphql(updateFieldValueMutation, map[string]any{"input": input}, nil); err != nil {
		return fmt.Errorf("update field value (github): %w", err)
	}
	return nil
}

const issueNodeIdQuery = `
query ($owner: String!, $repo: String!, $issueNumber: Int!) {
  repository(owner: $owner, name: $repo) {
    issue(number: $issueNumber) {
      id
    }
  }
}`

func (c *Client) IssueNodeId(owner, repo string, number int) (string, error) {
	var data struct {
		Repository struct {
			Issue *struct {
				Id string `json:"id"`
			} `json:"issue"`
		} `json:"repository"`
	}
	variables := map[string]any{"owner": owner, "repo": repo, "issueNumber": number}
	if err := c.graphql(issueNodeIdQuery, variables, &data); err != nil {
		return "", fmt.Errorf("resolve issue node id (github): %w", err)
	}
	if data.Repository.Issue == nil {
		return "", &client.NotFoundError{Kind: "issue", Name: "#" + strconv.Itoa(number)}
	}
	return data.Repository.Issue.Id, nil
}

const addSubIssueMutation = `
mutation ($input: AddSubIssueInput!) {
  addSubIssue(input: $input) {
    issue { id }
    subIssue { id }
  }
}`

// AddSubIssue records childNodeId as a sub-issue of parentNodeId.
func (c *Client) AddSubIssue(parentNodeId, childNodeId string) error {
	input := map[string]any{
		"issueId":    parentNodeId,
		"subIssueId": childNodeId,
	}
	if err := c.graphql(addSubIssueMutation, map[string]any{"input": input}, nil); err != nil {
		return fmt.Errorf("add sub-issue (github): %w", err)
	}
	return nil
}
