package explore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// stallingProvider blocks course fetches until their context ends.
type stallingProvider struct {
	*catalog.MockProvider
}

func (p stallingProvider) ListCourses(ctx context.Context, _ string) ([]catalog.Course, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestEnsure_IdempotentWhileLoading(t *testing.T) {
	p := testProvider()
	o := NewOrchestrator(NewCache(), p)
	key := CoursesKey("1")

	first := o.Ensure(key)
	require.NotNil(t, first)
	assert.Nil(t, o.Ensure(key), "second ensure while loading")

	msgs := collect(first)
	require.Len(t, msgs, 1)
	assert.True(t, o.Apply(msgs[0].(FetchedMsg)))
	assert.Nil(t, o.Ensure(key), "ensure once loaded")
	assert.Equal(t, 1, p.CallCount(catalog.OpListCourses))
}

func TestApply_OutOfOrderCompletion(t *testing.T) {
	p := testProvider()
	o := NewOrchestrator(NewCache(), p)
	key := CoursesKey("1")

	old := collect(o.Ensure(key))
	require.Len(t, old, 1)
	o.InvalidateAndRefetch(func(k ResourceKey) bool { return k == key }, nil)
	p.AddCourses(catalog.Course{ID: "c9", PathwayID: "1", Name: "Compilers"})
	fresh := collect(o.Ensure(key))
	require.Len(t, fresh, 1)

	assert.True(t, o.Apply(fresh[0].(FetchedMsg)))
	assert.False(t, o.Apply(old[0].(FetchedMsg)))

	e := o.Cache().Get(key)
	require.Equal(t, StatusLoaded, e.Status)
	assert.Len(t, e.Data.([]catalog.Course), 4)
}

func TestApply_ResultForEvictedKeyDropped(t *testing.T) {
	o := NewOrchestrator(NewCache(), testProvider())
	key := CoursesKey("1")

	msgs := collect(o.Ensure(key))
	o.InvalidateAndRefetch(func(ResourceKey) bool { return true }, nil)

	assert.False(t, o.Apply(msgs[0].(FetchedMsg)))
	assert.Equal(t, StatusUnrequested, o.Cache().Get(key).Status)
}

func TestInvalidateAndRefetch_RequiredOnly(t *testing.T) {
	p := testProvider()
	o := NewOrchestrator(NewCache(), p)
	for _, k := range []ResourceKey{CoursesKey("1"), CoursesKey("2")} {
		for _, m := range collect(o.Ensure(k)) {
			o.Apply(m.(FetchedMsg))
		}
	}

	cmd := o.InvalidateAndRefetch(
		func(k ResourceKey) bool { return k.Kind == KindCourses },
		func(k ResourceKey) bool { return k.PathwayID == "2" },
	)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, CoursesKey("2"), msgs[0].(FetchedMsg).Key)
	assert.Equal(t, StatusUnrequested, o.Cache().Get(CoursesKey("1")).Status)
	assert.Equal(t, StatusLoading, o.Cache().Get(CoursesKey("2")).Status)
}

func TestEnsure_ExamsWithoutIDsSkipProvider(t *testing.T) {
	p := testProvider()
	o := NewOrchestrator(NewCache(), p)
	pk := PathwaysKey(testCareer, catalog.Filters{})
	for _, m := range collect(o.Ensure(pk)) {
		o.Apply(m.(FetchedMsg))
	}

	// Pathway 2 lists no exams.
	key := ExamsKey("2")
	require.True(t, o.ExamsResolvable(key))
	msgs := collect(o.Ensure(key))
	require.True(t, o.Apply(msgs[0].(FetchedMsg)))

	assert.Equal(t, 0, p.CallCount(catalog.OpGetExamInfo))
	e := o.Cache().Get(key)
	assert.Equal(t, StatusLoaded, e.Status)
	assert.Empty(t, e.Data.([]catalog.ExamInfo))
	assert.False(t, o.ExamsResolvable(ExamsKey("nope")))
}

func TestEnsure_Timeout(t *testing.T) {
	o := NewOrchestrator(NewCache(), stallingProvider{testProvider()}, WithFetchTimeout(10*time.Millisecond))
	key := CoursesKey("1")

	msgs := collect(o.Ensure(key))
	require.True(t, o.Apply(msgs[0].(FetchedMsg)))

	e := o.Cache().Get(key)
	assert.Equal(t, StatusError, e.Status)
	assert.Equal(t, TimeoutFetchError, e.Err)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"provider message", &catalog.StatusError{Code: 404, Message: "no such pathway"}, "no such pathway"},
		{"wrapped provider message", fmt.Errorf("list: %w", &catalog.StatusError{Code: 500, Message: "db down"}), "db down"},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), TimeoutFetchError},
		{"transport", errors.New("dial tcp 10.0.0.1:443: connection refused"), GenericFetchError},
		{"status without message", fmt.Errorf("list: %w", &catalog.StatusError{Code: 503}), GenericFetchError},
		{"empty", errors.New(""), GenericFetchError},
		{"nil", nil, GenericFetchError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
