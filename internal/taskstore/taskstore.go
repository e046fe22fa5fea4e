// Package taskstore adapts a recordstore.Store to the task persistence
// interface the a2a server expects. Tasks are encoded through a codec
// and keyed by task id, so any record store backend can hold them.
package taskstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2asrv"

	"travel-planner/internal/recordstore"
)

// Store persists a2a tasks in a record store.
type Store struct {
	records recordstore.Store
	codec   recordstore.Codec
}

// New wraps records as an a2a task store using JSON encoding.
func New(records recordstore.Store) *Store {
	return NewWithCodec(records, recordstore.JSONCodec{})
}

// NewWithCodec wraps records with a caller-provided codec.
func NewWithCodec(records recordstore.Store, codec recordstore.Codec) *Store {
	return &Store{records: records, codec: codec}
}

// Save persists the task, replacing any version stored under the same id.
func (s *Store) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return fmt.Errorf("task is required")
	}

	payload, err := s.codec.Marshal(task)
	if err != nil {
		return err
	}
	return s.records.Save(ctx, string(task.ID), payload)
}

// Get loads a task by id. Missing tasks are reported as
// a2a.ErrTaskNotFound so the protocol layer renders the right error.
func (s *Store) Get(ctx context.Context, taskID a2a.TaskID) (*a2a.Task, error) {
	payload, err := s.records.Get(ctx, string(taskID))
	if errors.Is(err, recordstore.ErrNotFound) {
		return nil, a2a.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	var task a2a.Task
	if err := s.codec.Unmarshal(payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task record. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, taskID a2a.TaskID) error {
	return s.records.Delete(ctx, string(taskID))
}

// Close releases the underlying record store.
func (s *Store) Close() {
	s.records.Close()
}

var _ a2asrv.TaskStore = (*Store)(nil)
