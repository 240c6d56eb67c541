package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// ChunkRepository contains DB helpers for documents and their chunks.
type ChunkRepository struct {
	pool *pgxpool.Pool
}

// NewChunkRepository constructs a new chunk repository.
func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{pool: pool}
}

// SaveIngest writes all documents and chunks of one ingest call in a
// single transaction. A failure at any row rolls back the whole call so
// no document is left without its chunks.
func (r *ChunkRepository) SaveIngest(ctx context.Context, projectID uuid.UUID, docs []DocumentIngest) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin ingest tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, di := range docs {
		batch.Queue(
			`INSERT INTO documents (document_id, project_id, title, filename, page_number)
			 VALUES ($1, $2, $3, $4, $5)`,
			di.Document.ID, projectID, di.Document.Title, di.Document.Filename, di.Document.Page)
		for _, c := range di.Chunks {
			batch.Queue(
				`INSERT INTO chunks (chunk_id, project_id, document_id, doc_title, page_number, chunk_text, embedding)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				c.ID, projectID, c.DocumentID, c.Title, c.Page, c.Text, c.Embedding)
		}
	}

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("ingest batch statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close ingest batch: %w", err)
	}
	return tx.Commit(ctx)
}

// Nearest returns up to k chunks of the project ordered by ascending
// cosine distance to the query vector. Distance ties resolve to insertion
// order via the seq column. k caps the result; fewer rows are returned
// as-is when the project holds fewer chunks.
func (r *ChunkRepository) Nearest(ctx context.Context, projectID uuid.UUID, query pgvector.Vector, k int) ([]ScoredChunk, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT chunk_id, document_id, doc_title, page_number, chunk_text, embedding <=> $2 AS distance
		 FROM chunks
		 WHERE project_id = $1
		 ORDER BY embedding <=> $2, seq
		 LIMIT $3`,
		projectID, query, k)
	if err != nil {
		return nil, fmt.Errorf("nearest chunks: %w", err)
	}
	defer rows.Close()

	var out []ScoredChunk
	for rows.Next() {
		sc := ScoredChunk{Chunk: Chunk{ProjectID: projectID}}
		if err := rows.Scan(&sc.Chunk.ID, &sc.Chunk.DocumentID, &sc.Chunk.Title, &sc.Chunk.Page, &sc.Chunk.Text, &sc.Distance); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CountByProject reports how many chunks a project holds.
func (r *ChunkRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var n int64
	row := r.pool.QueryRow(ctx, `SELECT count(*) FROM chunks WHERE project_id = $1`, projectID)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return n, nil
}
