package service

import "context"

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Artifact is a generated export, already handed to the output sink.
type Artifact struct {
	Name        string
	ContentType string
	Location    string
	Data        []byte
}

type ExportService interface {
	// Workbook builds one sheet per record kind with every row of animalID.
	Workbook(ctx context.Context, animalID string) (*Artifact, error)
	// Document builds the printable history of animalID; it needs a livestock profile.
	Document(ctx context.Context, animalID string) (*Artifact, error)
}
