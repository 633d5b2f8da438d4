package mongodb

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tinoosan/finboard/internal/storage"
)

// bsonResult round-trips a document through BSON so Decode behaves like the driver's.
type bsonResult struct {
	doc interface{}
	err error
}

func (r bsonResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	b, err := bson.Marshal(r.doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(b, v)
}

// Mock for Collection interface.
type mockCollection struct {
	docs       map[string]string
	updateErr  error
	lastUpsert bool
}

func newMockCollection() *mockCollection { return &mockCollection{docs: map[string]string{}} }

func idOf(filter interface{}) string {
	m, _ := filter.(bson.M)
	id, _ := m["_id"].(string)
	return id
}

func (m *mockCollection) FindOne(_ context.Context, filter interface{}) SingleResult {
	v, ok := m.docs[idOf(filter)]
	if !ok {
		return bsonResult{err: mongo.ErrNoDocuments}
	}
	return bsonResult{doc: bson.M{"_id": idOf(filter), "value": v}}
}

func (m *mockCollection) UpdateOne(_ context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for _, o := range opts {
		if o.Upsert != nil && *o.Upsert {
			m.lastUpsert = true
		}
	}
	set := update.(bson.M)["$set"].(bson.M)
	m.docs[idOf(filter)] = set["value"].(string)
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func (m *mockCollection) DeleteMany(_ context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	in := filter.(bson.M)["_id"].(bson.M)["$in"].([]string)
	var n int64
	for _, k := range in {
		if _, ok := m.docs[k]; ok {
			delete(m.docs, k)
			n++
		}
	}
	return &mongo.DeleteResult{DeletedCount: n}, nil
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	coll := newMockCollection()
	s := New(coll)

	if _, ok, err := s.Load(ctx, storage.KeyGoals); err != nil || ok {
		t.Fatalf("expected missing slot, ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, storage.KeyGoals, []byte(`[{"id":"g1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !coll.lastUpsert {
		t.Errorf("expected upsert option on save")
	}
	b, ok, err := s.Load(ctx, storage.KeyGoals)
	if err != nil || !ok || string(b) != `[{"id":"g1"}]` {
		t.Fatalf("load got %q ok=%v err=%v", b, ok, err)
	}
}

func TestStore_SaveError(t *testing.T) {
	coll := newMockCollection()
	coll.updateErr = errors.New("write conflict")
	err := New(coll).Save(context.Background(), storage.KeyTheme, []byte(`"dark"`))
	if err == nil || !strings.Contains(err.Error(), "write conflict") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	coll := newMockCollection()
	coll.docs[storage.KeyAccounts] = "[]"
	coll.docs["unrelated"] = "1"
	if err := New(coll).Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := coll.docs[storage.KeyAccounts]; ok {
		t.Errorf("expected ledger slot removed")
	}
	if _, ok := coll.docs["unrelated"]; !ok {
		t.Errorf("expected unrelated document kept")
	}
}
