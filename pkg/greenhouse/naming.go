// Package greenhouse holds the greenhouse registry's name handling: operator
// input such as "1-s" has to find the registered "①-S".
package greenhouse

import (
	"context"
	"strings"

	"kiku/entities"
	"kiku/pkg/apperrors"
)

// GroupSeparator splits a greenhouse name into its group prefix and member part.
const GroupSeparator = "-"

var circled = strings.NewReplacer(
	// 10 before 1 so "10" is not read as "1","0"
	"10", "⑩",
	"1", "①", "2", "②", "3", "③", "4", "④", "5", "⑤",
	"6", "⑥", "7", "⑦", "8", "⑧", "9", "⑨",
)

var stripped = strings.NewReplacer("-", "", " ", "", "－", "", "　", "")

// Normalize upper-cases name, maps ASCII 1..10 to circled numerals and drops
// hyphens and spaces. Registered names only go up to ⑩, so longer numbers are
// mapped digit by digit ("11" becomes "①①", "20" becomes "②0").
func Normalize(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = circled.Replace(s)
	return stripped.Replace(s)
}

// GroupKey is the part of name before the first separator, or the whole name.
func GroupKey(name string) string {
	if i := strings.Index(name, GroupSeparator); i > 0 {
		return name[:i]
	}
	return name
}

// Match finds name in list: exact match first, then normalised.
func Match(list []entities.Greenhouse, name string) *entities.Greenhouse {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	want := Normalize(name)
	for i := range list {
		if Normalize(list[i].Name) == want {
			return &list[i]
		}
	}
	return nil
}

type lister interface {
	List(ctx context.Context) ([]entities.Greenhouse, error)
}

// Resolver matches free-text greenhouse names against the registry.
type Resolver struct{ repo lister }

func NewResolver(repo lister) *Resolver { return &Resolver{repo: repo} }

// Resolve returns apperrors.ErrNotFound when nothing matches.
func (r *Resolver) Resolve(ctx context.Context, name string) (*entities.Greenhouse, error) {
	list, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if g := Match(list, name); g != nil {
		return g, nil
	}
	return nil, apperrors.ErrNotFound
}
