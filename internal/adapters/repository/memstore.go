package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"driftwatch/internal/domain/model"
	"driftwatch/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 8
)

// studentRecord bundles a student with their activity history.
type studentRecord struct {
	student    Student
	activities []Activity
}

// shard holds a slice of the student map under its own lock.
type shard struct {
	mu       sync.RWMutex
	students map[string]*studentRecord
}

// MemStore is a sharded in-memory Store. Students are sharded by id; a
// separate name index backs upsert-by-name.
type MemStore struct {
	shardCount int
	shards     []*shard

	nameMu    sync.Mutex
	idByName  map[string]string
	countMu   sync.RWMutex
	count     int
}

// NewMemStore creates a sharded in-memory store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		shardCount: defaultShardCount,
		idByName:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{students: make(map[string]*studentRecord)}
	}

	metrics.UpdateStoreShardCount(s.shardCount)
	return s
}

func (s *MemStore) shardFor(id string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return s.shards[int(h.Sum32())%s.shardCount]
}

// UpsertStudent creates a student keyed by name, or updates the target
// career of an existing one when it changed.
func (s *MemStore) UpsertStudent(_ context.Context, name, email, targetCareer string) (Student, error) {
	if name == "" {
		return Student{}, ErrNameRequired
	}

	// The name index serializes upserts for the same name; per-id state
	// still lives in the shards.
	s.nameMu.Lock()
	defer s.nameMu.Unlock()

	if id, ok := s.idByName[name]; ok {
		sh := s.shardFor(id)
		sh.mu.Lock()
		defer sh.mu.Unlock()

		rec := sh.students[id]
		if rec.student.TargetCareer != targetCareer && targetCareer != "" {
			rec.student.TargetCareer = targetCareer
		}
		return rec.student, nil
	}

	student := Student{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		TargetCareer: targetCareer,
		CreatedAt:    time.Now().UTC(),
	}

	sh := s.shardFor(student.ID)
	sh.mu.Lock()
	sh.students[student.ID] = &studentRecord{student: student}
	sh.mu.Unlock()

	s.idByName[name] = student.ID

	s.countMu.Lock()
	s.count++
	total := s.count
	s.countMu.Unlock()
	metrics.UpdateStoreStudents(total)

	return student, nil
}

// Student returns a student by id.
func (s *MemStore) Student(_ context.Context, id string) (Student, error) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.students[id]
	if !ok {
		return Student{}, ErrNotFound
	}
	return rec.student, nil
}

// AddActivity appends an activity to a student's history.
func (s *MemStore) AddActivity(_ context.Context, studentID string, act model.Activity) (Activity, error) {
	sh := s.shardFor(studentID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.students[studentID]
	if !ok {
		return Activity{}, ErrNotFound
	}

	stored := Activity{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Name:      act.Name,
		Category:  act.Category,
		Type:      act.Type,
		Timestamp: act.Timestamp,
	}
	if stored.Timestamp.IsZero() {
		stored.Timestamp = time.Now().UTC()
	}

	rec.activities = append(rec.activities, stored)
	metrics.RecordStoreActivity()
	return stored, nil
}

// Activities lists a student's activities in insertion order.
func (s *MemStore) Activities(_ context.Context, studentID string) ([]Activity, error) {
	sh := s.shardFor(studentID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	rec, ok := sh.students[studentID]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]Activity, len(rec.activities))
	copy(out, rec.activities)
	return out, nil
}

// SetDriftScore records the latest drift score for a student.
func (s *MemStore) SetDriftScore(_ context.Context, id string, score float64) error {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	rec, ok := sh.students[id]
	if !ok {
		return ErrNotFound
	}
	rec.student.CurrentDriftScore = score
	return nil
}

// Count returns the number of stored students.
func (s *MemStore) Count(_ context.Context) int {
	s.countMu.RLock()
	defer s.countMu.RUnlock()
	return s.count
}
