package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Project is a container for ingested study material.
type Project struct {
	ID        uuid.UUID
	Name      string
	OwnerRef  string
	CreatedAt time.Time
}

// Document is one ingested source text. Documents are immutable once
// stored; re-ingesting creates a new row.
type Document struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Title     string
	Filename  string
	Page      *int
	CreatedAt time.Time
}

// Chunk is a bounded substring of a document together with its embedding,
// the unit of retrieval.
type Chunk struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	DocumentID uuid.UUID
	Title      string
	Page       *int
	Text       string
	Embedding  pgvector.Vector
}

// ScoredChunk pairs a retrieved chunk with its cosine distance to the
// query vector. Lower is nearer.
type ScoredChunk struct {
	Chunk    Chunk
	Distance float64
}

// DocumentIngest groups one document with the chunks derived from it for
// a single atomic write.
type DocumentIngest struct {
	Document Document
	Chunks   []Chunk
}
