package postgres

import (
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/netbill/netbill/internal/types"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	return false
}

var sortColumnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// orderAndLimit renders the ORDER BY / LIMIT clause for a query filter.
// Sort columns are whitelisted by shape so filter input never reaches the
// query as raw SQL.
func orderAndLimit(qf *types.QueryFilter) string {
	if qf == nil {
		qf = types.NewDefaultQueryFilter()
	}

	sort := qf.GetSort()
	if !sortColumnPattern.MatchString(sort) {
		sort = types.FilterDefaultSort
	}
	order := types.OrderDesc
	if qf.GetOrder() == types.OrderAsc {
		order = types.OrderAsc
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", sort, order)
	if qf.GetLimit() > 0 {
		clause += fmt.Sprintf(" LIMIT %d OFFSET %d", qf.GetLimit(), qf.GetOffset())
	}
	return clause
}

func appendTimeRange(conditions *[]string, args *[]interface{}, trf *types.TimeRangeFilter) {
	if trf == nil {
		return
	}
	if trf.StartTime != nil {
		*conditions = append(*conditions, "created_at >= ?")
		*args = append(*args, *trf.StartTime)
	}
	if trf.EndTime != nil {
		*conditions = append(*conditions, "created_at <= ?")
		*args = append(*args, *trf.EndTime)
	}
}
