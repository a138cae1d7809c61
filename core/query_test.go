package core

import (
	"math/rand"
	"sort"
	"testing"
)

type queryUser struct {
	Name string
	ID   Snowflake
}

type queryMember struct {
	User  queryUser
	Nick  string
	owner *queryMember
}

// Owner is an accessor used to exercise method lookup in Match paths.
func (m queryMember) Owner() *queryMember {
	return m.owner
}

func testMembers(n int) []queryMember {
	members := make([]queryMember, n)
	for i := range members {
		members[i] = queryMember{
			User: queryUser{Name: "user", ID: Snowflake(i)},
			Nick: "nick",
		}
		members[i].owner = &members[i]
	}
	return members
}

func TestFind(t *testing.T) {
	members := testMembers(10)

	for i := 0; i < 11; i++ {
		want := Snowflake(i)
		got, ok := Find(func(m queryMember) bool { return m.User.ID == want }, members)

		if i >= len(members) {
			if ok {
				t.Errorf("Find(id=%d) = %v, want no match", i, got)
			}
			continue
		}
		if !ok || got.User.ID != want {
			t.Errorf("Find(id=%d) = (%v, %v), want match", i, got, ok)
		}
	}
}

func TestGet(t *testing.T) {
	members := testMembers(10)

	for i := 0; i < 11; i++ {
		id := Snowflake(i)

		tests := []struct {
			name     string
			matchers []Matcher
		}{
			{"single field", []Matcher{Match("User.ID", id)}},
			{"method traversal", []Matcher{Match("Owner.User.ID", id)}},
			{"multiple matchers", []Matcher{Match("User.ID", id), Match("Owner.User.ID", id)}},
		}

		for _, tt := range tests {
			got, ok := Get(members, tt.matchers...)
			if i >= len(members) {
				if ok {
					t.Errorf("Get(%s, id=%d) = %v, want no match", tt.name, i, got)
				}
				continue
			}
			if !ok || got.User.ID != id {
				t.Errorf("Get(%s, id=%d) = (%v, %v), want match", tt.name, i, got, ok)
			}
		}
	}
}

func TestGetConvertsMatchValues(t *testing.T) {
	members := testMembers(3)

	// An untyped int should match a Snowflake field.
	got, ok := Get(members, Match("User.ID", 2))
	if !ok || got.User.ID != 2 {
		t.Errorf("Get with int value = (%v, %v), want member 2", got, ok)
	}
}

func TestGetUnknownPath(t *testing.T) {
	members := testMembers(3)

	if _, ok := Get(members, Match("NoSuchField", 1)); ok {
		t.Error("Get with unknown path should not match")
	}
	if _, ok := Get(members, Match("User.NoSuchField", 1)); ok {
		t.Error("Get with unknown nested path should not match")
	}
}

func TestGetNilStep(t *testing.T) {
	m := queryMember{User: queryUser{Name: "solo"}}
	// owner is nil; traversing through it must not panic.
	if _, ok := Get([]queryMember{m}, Match("Owner.User.Name", "solo")); ok {
		t.Error("Get through nil pointer should not match")
	}
}

func TestUnique(t *testing.T) {
	values := make([]int, 1000)
	for i := range values {
		values[i] = rand.Intn(100)
	}

	unique := Unique(values)

	set := make(map[int]struct{})
	for _, v := range values {
		set[v] = struct{}{}
	}
	if len(unique) != len(set) {
		t.Fatalf("Unique() kept %d values, want %d", len(unique), len(set))
	}

	sorted := append([]int(nil), unique...)
	sort.Ints(sorted)
	for _, v := range sorted {
		if _, ok := set[v]; !ok {
			t.Errorf("Unique() produced value %d not in input", v)
		}
	}
}

func TestUniquePreservesOrder(t *testing.T) {
	got := Unique([]string{"b", "a", "b", "c", "a"})
	want := []string{"b", "a", "c"}

	if len(got) != len(want) {
		t.Fatalf("Unique() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Unique() = %v, want %v", got, want)
		}
	}
}

func TestMustFindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustFind should panic when nothing matches")
		}
	}()
	MustFind(func(int) bool { return false }, []int{1, 2, 3})
}
