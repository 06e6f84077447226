package jobs

import (
	"fmt"
	"strings"
)

// Sentinel filter value meaning "do not filter on this field".
const filterAll = "all"

// Pagination defaults.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListParams is the normalized form of a listing request handed to the store.
type ListParams struct {
	OwnerID string
	Status  string
	JobType string
	Search  string
	Sort    string
	Page    int
	Limit   int
}

// normalized returns a copy with pagination defaults applied.
func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// offset is the number of rows skipped before the requested page.
func (p ListParams) offset() int {
	return (p.Page - 1) * p.Limit
}

// buildPredicates translates the filters into WHERE clauses and their
// positional arguments. The owner predicate always comes first: no filter
// combination can reach another user's jobs.
func buildPredicates(p ListParams) ([]string, []interface{}) {
	clauses := []string{"created_by = $1"}
	args := []interface{}{p.OwnerID}

	if p.Status != "" && p.Status != filterAll {
		args = append(args, p.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if p.JobType != "" && p.JobType != filterAll {
		args = append(args, p.JobType)
		clauses = append(clauses, fmt.Sprintf("job_type = $%d", len(args)))
	}
	if p.Search != "" {
		// Case-insensitive substring match on position.
		args = append(args, "%"+p.Search+"%")
		clauses = append(clauses, fmt.Sprintf("position ILIKE $%d", len(args)))
	}

	return clauses, args
}

// orderClause maps the four supported sort keys to deterministic orderings.
// An unknown or absent sort key means store-default order.
func orderClause(sort string) string {
	switch sort {
	case "latest":
		return " ORDER BY created_at DESC"
	case "oldest":
		return " ORDER BY created_at ASC"
	case "a-z":
		return " ORDER BY position ASC"
	case "z-a":
		return " ORDER BY position DESC"
	default:
		return ""
	}
}

// buildListQuery produces the SELECT for one page of matching jobs.
func buildListQuery(p ListParams) (string, []interface{}) {
	clauses, args := buildPredicates(p)

	var sb strings.Builder
	sb.WriteString(`SELECT id, company, position, status, job_type, job_location, created_by, created_at, updated_at FROM jobs WHERE `)
	sb.WriteString(strings.Join(clauses, " AND "))
	sb.WriteString(orderClause(p.Sort))

	args = append(args, p.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, p.offset())
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return sb.String(), args
}

// buildCountQuery produces the COUNT over the same predicates, ignoring
// pagination.
func buildCountQuery(p ListParams) (string, []interface{}) {
	clauses, args := buildPredicates(p)
	return "SELECT COUNT(*) FROM jobs WHERE " + strings.Join(clauses, " AND "), args
}
