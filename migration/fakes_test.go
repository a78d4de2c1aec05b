package migration

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/thelllabs/winehaus-veritas-data-migration/legacy"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
)

// fakeSource serves canned legacy rows. It applies the same Supply-line
// filter the real store does.
type fakeSource struct {
	accounts   []legacy.Account
	activities map[int][]legacy.Activity    // by account id
	lines      map[int][]legacy.ActivityLine // by activity id
	details    map[int]legacy.CaseDetail     // by case detail id

	// includeSupplyLines disables the Supply filter, for tests proving the
	// reconciler holds the invariant on its own.
	includeSupplyLines bool
}

func (f *fakeSource) Accounts(ctx context.Context) ([]legacy.Account, error) {
	return f.accounts, nil
}

func (f *fakeSource) ConfirmedActivities(ctx context.Context, accountId int) ([]legacy.Activity, error) {
	return f.activities[accountId], nil
}

func (f *fakeSource) ActivityLines(ctx context.Context, activityId int) ([]legacy.ActivityLine, error) {
	rows := f.lines[activityId]
	if f.includeSupplyLines {
		return rows, nil
	}
	out := make([]legacy.ActivityLine, 0, len(rows))
	for _, l := range rows {
		if l.LineKind == legacy.LineKindSupply {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeSource) CaseDetail(ctx context.Context, caseDetailId int) (*legacy.CaseDetail, error) {
	d, ok := f.details[caseDetailId]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (f *fakeSource) AllCaseDetails(ctx context.Context) ([]legacy.CaseDetail, error) {
	ids := make([]int, 0, len(f.details))
	for id := range f.details {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]legacy.CaseDetail, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.details[id])
	}
	return out, nil
}

type fakeGroup struct {
	id               int
	customerId       int
	status           models.OperationStatus
	legacyActivityId int
}

type fakeOp struct {
	id      int
	groupId int
	caseId  int
	kind    models.OperationKind
	status  models.OperationStatus
}

type fakeEntry struct {
	operationId *int
	caseId      *int
	wineId      int
	formatId    int
	vintageId   int
	amount      decimal.Decimal
}

// fakeStore is an in-memory TargetStore with the same find-or-create and
// accumulate semantics as the GORM one.
type fakeStore struct {
	customers map[int]int
	cases     map[int]int
	wines     map[int]int
	formats   map[int]int
	vintages  map[int]int

	nextId int

	groups  []fakeGroup
	ops     []fakeOp
	ledger  []*fakeEntry
	lookups int // LookupByLegacyId call count, for memoization tests

	placeholderWines []int // legacy wine ids, in creation order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[int]int{},
		cases:     map[int]int{},
		wines:     map[int]int{},
		formats:   map[int]int{},
		vintages:  map[int]int{},
		nextId:    1000,
	}
}

func (s *fakeStore) mint() int {
	s.nextId++
	return s.nextId
}

func (s *fakeStore) LookupByLegacyId(ctx context.Context, kind IdentityKind, legacyId int) (int, bool, error) {
	s.lookups++
	var m map[int]int
	switch kind {
	case IdentityCustomer:
		m = s.customers
	case IdentityCase:
		m = s.cases
	case IdentityWine:
		m = s.wines
	case IdentityFormat:
		m = s.formats
	case IdentityVintage:
		m = s.vintages
	default:
		return 0, false, fmt.Errorf("unknown identity kind %q", kind)
	}
	id, ok := m[legacyId]
	return id, ok, nil
}

func (s *fakeStore) CreatePlaceholderWine(ctx context.Context, legacyWineId int) (int, error) {
	id := s.mint()
	s.wines[legacyWineId] = id
	s.placeholderWines = append(s.placeholderWines, legacyWineId)
	return id, nil
}

func (s *fakeStore) FindGroupByLegacyActivity(ctx context.Context, legacyActivityId int) (int, bool, error) {
	for _, g := range s.groups {
		if g.legacyActivityId == legacyActivityId {
			return g.id, true, nil
		}
	}
	return 0, false, nil
}

func (s *fakeStore) InsertOperationGroup(ctx context.Context, customerId int, status models.OperationStatus, legacyActivityId int) (int, error) {
	g := fakeGroup{
		id:               s.mint(),
		customerId:       customerId,
		status:           status,
		legacyActivityId: legacyActivityId,
	}
	s.groups = append(s.groups, g)
	return g.id, nil
}

func (s *fakeStore) FirstOrCreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (int, bool, error) {
	for _, op := range s.ops {
		if op.groupId == groupId && op.caseId == caseId {
			return op.id, false, nil
		}
	}
	id, err := s.CreateCaseOperation(ctx, groupId, caseId, kind, status)
	return id, true, err
}

func (s *fakeStore) CreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (int, error) {
	op := fakeOp{
		id:      s.mint(),
		groupId: groupId,
		caseId:  caseId,
		kind:    kind,
		status:  status,
	}
	s.ops = append(s.ops, op)
	return op.id, nil
}

func (s *fakeStore) PostInventory(ctx context.Context, operationId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error {
	for _, e := range s.ledger {
		if e.operationId != nil && *e.operationId == operationId &&
			e.wineId == wineId && e.formatId == bottleFormatId && e.vintageId == bottleVintageId {
			e.amount = e.amount.Add(amount)
			return nil
		}
	}
	opId := operationId
	s.ledger = append(s.ledger, &fakeEntry{
		operationId: &opId,
		wineId:      wineId,
		formatId:    bottleFormatId,
		vintageId:   bottleVintageId,
		amount:      amount,
	})
	return nil
}

func (s *fakeStore) UpsertSnapshot(ctx context.Context, caseId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error {
	for _, e := range s.ledger {
		if e.operationId == nil && e.caseId != nil && *e.caseId == caseId &&
			e.wineId == wineId && e.formatId == bottleFormatId && e.vintageId == bottleVintageId {
			e.amount = amount
			return nil
		}
	}
	cid := caseId
	s.ledger = append(s.ledger, &fakeEntry{
		caseId:    &cid,
		wineId:    wineId,
		formatId:  bottleFormatId,
		vintageId: bottleVintageId,
		amount:    amount,
	})
	return nil
}

func (s *fakeStore) opsForGroup(groupId int) []fakeOp {
	var out []fakeOp
	for _, op := range s.ops {
		if op.groupId == groupId {
			out = append(out, op)
		}
	}
	return out
}

func (s *fakeStore) entriesForOp(operationId int) []*fakeEntry {
	var out []*fakeEntry
	for _, e := range s.ledger {
		if e.operationId != nil && *e.operationId == operationId {
			out = append(out, e)
		}
	}
	return out
}

func (s *fakeStore) totalForCase(caseId int, kind models.OperationKind) decimal.Decimal {
	total := decimal.Zero
	for _, op := range s.ops {
		if op.caseId != caseId || op.kind != kind {
			continue
		}
		for _, e := range s.entriesForOp(op.id) {
			total = total.Add(e.amount)
		}
	}
	return total
}
