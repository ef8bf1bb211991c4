package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteKV(t *testing.T) *GormKV {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would get its own database
	sqlDB.SetMaxOpenConns(1)
	kv, err := NewGormKV(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

// exerciseKV runs the same contract against every backend.
func exerciseKV(t *testing.T, kv KV) {
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "a", Entry{Value: []byte(`{"n":1}`), Version: 1}))
	e, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"n":1}`, string(e.Value))
	assert.Equal(t, 1, e.Version)

	require.NoError(t, kv.Set(ctx, "a", Entry{Value: []byte(`{"n":2}`), Version: 2}))
	e, _, err = kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(e.Value))
	assert.Equal(t, 2, e.Version)

	require.NoError(t, kv.Set(ctx, "b", Entry{Value: []byte(`[]`), Version: 1}))
	require.NoError(t, kv.Delete(ctx, "a", "b", "never-set"))
	_, ok, _ = kv.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = kv.Get(ctx, "b")
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	raw := []byte(`"x"`)
	require.NoError(t, kv.Set(ctx, "k", Entry{Value: raw}))
	raw[1] = 'y'

	e, _, _ := kv.Get(ctx, "k")
	assert.Equal(t, `"x"`, string(e.Value))
}

func TestGormKV(t *testing.T) {
	exerciseKV(t, newSQLiteKV(t))
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	kv, err := NewRedisKV(context.Background(), addr)
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, Namespace(kv, "test/"+t.Name()+"/"))
}

func TestNamespaceIsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	base := NewMemoryKV()
	alice := Namespace(base, ProfilePrefix("alice"))
	bob := Namespace(base, ProfilePrefix("bob"))

	require.NoError(t, alice.Set(ctx, "enrolled_courses", Entry{Value: []byte(`[]`)}))
	_, ok, err := bob.Get(ctx, "enrolled_courses")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, _ = base.Get(ctx, "profile/alice/enrolled_courses")
	assert.True(t, ok)

	require.NoError(t, alice.Close())
	require.NoError(t, alice.Delete(ctx, "enrolled_courses"))
	assert.Equal(t, 0, base.Len())
}

func TestKeySpecKey(t *testing.T) {
	assert.Equal(t, "enrolled_courses", KeyEnrolledCourses.Key())
	assert.Equal(t, "course_progress_es-101", KeyCourseProgress.Key("es-101"))
	assert.Equal(t, "user_course_progress_ana@example.com", KeyUserCourseProgress.Key("ana@example.com"))
	assert.Equal(t, "assessment_results_es-101_ana@example.com", KeyAssessmentResults.Key("es-101", "ana@example.com"))

	seen := map[string]bool{}
	for _, k := range Registry() {
		assert.False(t, seen[k.Pattern], "duplicate key %s", k.Pattern)
		seen[k.Pattern] = true
		assert.GreaterOrEqual(t, k.Version, 1)
	}
}
