package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Columns []*Column `hcl:"column,block"`
	Stores  []*Store  `hcl:"store,block"`
	Rows    []*Row    `hcl:"row,block"`
	Remain  hcl.Body  `hcl:",remain"`
}

// Column is the HCL schema of a `column "<label>" {}` block.
type Column struct {
	Label      string   `hcl:"label,label"`
	Path       []string `hcl:"path"`
	Validation string   `hcl:"validation,optional"`
	Hint       string   `hcl:"hint,optional"`
	Editor     string   `hcl:"editor,optional"`
	Choices    []string `hcl:"choices,optional"`
}

// Store is the HCL schema of a `store "<kind>" {}` block.
type Store struct {
	Kind               string `hcl:"kind,label"`
	DSN                string `hcl:"dsn,optional"`
	URL                string `hcl:"url,optional"`
	Namespace          string `hcl:"namespace,optional"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Row is the HCL schema of a `row "<id>" {}` block. Its attributes are free
// form and become the record's fields.
type Row struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}
