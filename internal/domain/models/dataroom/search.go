package dataroom

// ResultType distinguishes folder hits from file hits
type ResultType string

const (
	ResultTypeFolder ResultType = "folder"
	ResultTypeFile   ResultType = "file"
)

// MatchKind records which field of an entity matched the query
type MatchKind string

const (
	MatchKindName    MatchKind = "name"
	MatchKindContent MatchKind = "content"
)

// SearchResult is a single folder or file hit.
// Folders carry ParentFolder, files carry Folder and FileSize.
type SearchResult struct {
	ID           string      `json:"id"`
	Type         ResultType  `json:"type"`
	Name         string      `json:"name"`
	MatchKinds   []MatchKind `json:"match_types"`
	Room         RoomRef     `json:"dataroom"`
	Path         string      `json:"path,omitempty"`
	ParentFolder *FolderRef  `json:"parent_folder,omitempty"`
	Folder       *FolderRef  `json:"folder,omitempty"`
	FileSize     int64       `json:"file_size,omitempty"`
}

// SearchResults contains every match in a room; there is no pagination
type SearchResults struct {
	Query        string         `json:"query"`
	Total        int            `json:"count"`
	FilesCount   int            `json:"files_count"`
	FoldersCount int            `json:"folders_count"`
	Results      []SearchResult `json:"results"`
}

// Suggestion is a single autocomplete entry
type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
