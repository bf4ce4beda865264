package domain

// MessageDescriptor represents one translatable message.
//
// DefaultMessage is the canonical source-language text and Description is
// translator-facing guidance. An empty Description means the author supplied
// none; it is omitted from JSON output. A descriptor held by a catalog always
// has a non-empty ID and DefaultMessage.
type MessageDescriptor struct {
	ID             string `json:"id"`
	Description    string `json:"description,omitempty"`
	DefaultMessage string `json:"defaultMessage"`
}

// MessageFile represents the messages extracted from a single source file.
type MessageFile struct {
	// Path is the file path relative to the scanned root.
	Path string `json:"path"`
	// Language is the source language of this file.
	Language Language `json:"language"`
	// Messages contains the extracted descriptors in first-discovery order.
	Messages []MessageDescriptor `json:"messages"`
}

// Catalog represents the messages extracted across a scanned project.
type Catalog struct {
	// Files contains all in-scope files, sorted by path.
	Files []MessageFile `json:"files"`
	// RootPath is the root directory of the scanned project.
	RootPath string `json:"rootPath"`
}

// CountMessages returns the total number of descriptors across all files.
func (c Catalog) CountMessages() int {
	count := 0
	for _, f := range c.Files {
		count += len(f.Messages)
	}
	return count
}
