package hierarchy_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/org-structure-audit/internal/domain"
	"github.com/org-structure-audit/internal/hierarchy"
)

func employee(id int64, first, last string, managerID ...int64) domain.Employee {
	e := domain.Employee{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Salary:    decimal.NewFromInt(80),
	}
	if len(managerID) > 0 {
		m := managerID[0]
		e.ManagerID = &m
	}
	return e
}

func TestBuild_SingleRoot(t *testing.T) {
	roster := domain.RosterOf(
		employee(2, "Jane", "Doe", 1),
		employee(1, "John", "Doe"),
		employee(3, "Jack", "Doe", 1),
	)

	h, err := hierarchy.Build(roster)
	require.NoError(t, err)

	root := h.Root()
	assert.Equal(t, int64(1), root.Employee.ID)
	assert.Nil(t, h.Parent(root))
	assert.True(t, root.IsManager())

	children := h.Children(root)
	require.Len(t, children, 2)
	assert.Equal(t, int64(2), children[0].Employee.ID)
	assert.Equal(t, int64(3), children[1].Employee.ID)
}

func TestBuild_ParentAndChildLinksAgree(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe", 1),
		employee(3, "Jack", "Doe", 2),
		employee(4, "Dan", "Doe", 2),
	)

	h, err := hierarchy.Build(roster)
	require.NoError(t, err)

	for _, n := range h.Nodes() {
		for _, c := range h.Children(n) {
			assert.Same(t, n, h.Parent(c))
		}
		if p := h.Parent(n); p != nil {
			assert.Contains(t, h.Children(p), n)
		}
	}
}

func TestBuild_NoRoot(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe", 2),
		employee(2, "Jane", "Doe", 1),
	)

	_, err := hierarchy.Build(roster)
	assert.ErrorIs(t, err, domain.ErrCEONotFound)
}

func TestBuild_EmptyRoster(t *testing.T) {
	_, err := hierarchy.Build(domain.NewRoster())
	assert.ErrorIs(t, err, domain.ErrCEONotFound)
}

func TestBuild_MultipleRoots(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe"),
		employee(3, "Jack", "Doe", 1),
	)

	_, err := hierarchy.Build(roster)
	require.ErrorIs(t, err, domain.ErrMultipleRoots)

	var rootsErr *domain.MultipleRootsError
	require.True(t, errors.As(err, &rootsErr))
	require.Len(t, rootsErr.Candidates, 2)
	assert.Equal(t, int64(1), rootsErr.Candidates[0].ID)
	assert.Equal(t, int64(2), rootsErr.Candidates[1].ID)
	assert.Contains(t, err.Error(), "John Doe (id=1)")
	assert.Contains(t, err.Error(), "Jane Doe (id=2)")
}

func TestBuild_UnknownManagerIsNotARoot(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe", 99),
	)

	h, err := hierarchy.Build(roster)
	require.NoError(t, err)

	assert.Equal(t, int64(1), h.Root().Employee.ID)

	orphan, ok := h.Node(2)
	require.True(t, ok)
	assert.Nil(t, h.Parent(orphan))

	_, ok = h.Level(2)
	assert.False(t, ok)
}

func TestBuild_OrderIndependentRoot(t *testing.T) {
	records := []domain.Employee{
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe", 1),
		employee(3, "Jack", "Doe", 2),
		employee(4, "Dan", "Doe", 3),
	}
	reversed := []domain.Employee{records[3], records[2], records[1], records[0]}

	h1, err := hierarchy.Build(domain.RosterOf(records...))
	require.NoError(t, err)
	h2, err := hierarchy.Build(domain.RosterOf(reversed...))
	require.NoError(t, err)

	assert.Equal(t, h1.Root().Employee.ID, h2.Root().Employee.ID)
	for _, id := range []int64{1, 2, 3, 4} {
		l1, _ := h1.Level(id)
		l2, _ := h2.Level(id)
		assert.Equal(t, l1, l2, "level of %d", id)
	}
}

func TestLevel(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe", 1),
		employee(3, "Jack", "Doe", 2),
		employee(4, "Lauren", "Smith", 5),
		employee(5, "Blake", "Thompson", 4),
		employee(6, "Self", "Managed", 6),
	)

	h, err := hierarchy.Build(roster)
	require.NoError(t, err)

	level, ok := h.Level(1)
	assert.True(t, ok)
	assert.Equal(t, 0, level)

	level, ok = h.Level(3)
	assert.True(t, ok)
	assert.Equal(t, 2, level)

	for _, id := range []int64{4, 5, 6, 42} {
		_, ok := h.Level(id)
		assert.False(t, ok, "employee %d should not reach the root", id)
	}
}

func TestBuild_FreshNodesPerCall(t *testing.T) {
	roster := domain.RosterOf(
		employee(1, "John", "Doe"),
		employee(2, "Jane", "Doe", 1),
	)

	h1, err := hierarchy.Build(roster)
	require.NoError(t, err)
	h2, err := hierarchy.Build(roster)
	require.NoError(t, err)

	assert.NotSame(t, h1.Root(), h2.Root())
	assert.Equal(t, 2, h1.Len())
}
