package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	n1, err := f.svc.Annotations.AddNote(ctx, who, "es-101", "l1", "  hola = hello ")
	require.NoError(t, err)
	assert.Equal(t, "hola = hello", n1.Text)
	_, err = f.svc.Annotations.AddNote(ctx, who, "es-101", "l2", "adios")
	require.NoError(t, err)

	all, err := f.svc.Annotations.Notes(ctx, who, "es-101", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	one, err := f.svc.Annotations.Notes(ctx, who, "es-101", "l2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "adios", one[0].Text)

	require.NoError(t, f.svc.Annotations.DeleteNote(ctx, who, "es-101", n1.ID))
	assert.ErrorIs(t, f.svc.Annotations.DeleteNote(ctx, who, "es-101", n1.ID), ErrNoteNotFound)
	all, err = f.svc.Annotations.Notes(ctx, who, "es-101", "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNoteValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	var verr *ValidationError
	_, err := f.svc.Annotations.AddNote(ctx, who, "es-101", "l1", "   ")
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Annotations.AddNote(ctx, who, "es-101", "l1", strings.Repeat("x", MaxNoteLength+1))
	assert.ErrorAs(t, err, &verr)
	_, err = f.svc.Annotations.AddNote(ctx, who, "es-101", "zz", "text")
	assert.ErrorIs(t, err, ErrLessonNotFound)
	_, err = f.svc.Annotations.AddNote(ctx, who, "fr-101", "f1", "text")
	assert.ErrorIs(t, err, ErrNotEnrolled)
	assert.ErrorIs(t, f.svc.Annotations.DeleteNote(ctx, who, "fr-101", "any"), ErrNotEnrolled)
}

func TestToggleBookmark(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	who := f.enrolled(t, "maria", "es-101")

	on, err := f.svc.Annotations.ToggleBookmark(ctx, who, "es-101", "l2")
	require.NoError(t, err)
	assert.True(t, on)
	marks, err := f.svc.Annotations.Bookmarks(ctx, who, "es-101")
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "l2", marks[0].LessonID)

	on, err = f.svc.Annotations.ToggleBookmark(ctx, who, "es-101", "l2")
	require.NoError(t, err)
	assert.False(t, on)
	marks, err = f.svc.Annotations.Bookmarks(ctx, who, "es-101")
	require.NoError(t, err)
	assert.Empty(t, marks)
}
