package service

import "price-recon/internal/reconcile/model"

type stageResults struct {
	article   []model.MatchRecord
	changes   []model.MatchRecord
	bracket   []model.MatchRecord
	generic   []model.MatchRecord
	fuzzy     []model.MatchRecord
	unmatched []model.UnmatchedItem
}

// aggregate собирает итог. MatchRate считается только по артикулам
// (как в прежних отчётах), 0 при пустом прайсе.
func aggregate(supplierTotal, baseTotal int, st stageResults) model.Report {
	rep := model.Report{
		SupplierTotal:  supplierTotal,
		BaseTotal:      baseTotal,
		Matches:        nonNil(st.article),
		PriceChanges:   nonNil(st.changes),
		BracketMatches: nonNil(st.bracket),
		CodeMatches:    nonNil(st.generic),
		FuzzyMatches:   nonNil(st.fuzzy),
		NewItems:       st.unmatched,
		UnmatchedCount: len(st.unmatched),
	}
	if rep.NewItems == nil {
		rep.NewItems = []model.UnmatchedItem{}
	}
	if supplierTotal > 0 {
		rep.MatchRate = float64(len(rep.Matches)) / float64(supplierTotal) * 100
	}
	return rep
}

// nonNil: в JSON [] вместо null.
func nonNil(m []model.MatchRecord) []model.MatchRecord {
	if m == nil {
		return []model.MatchRecord{}
	}
	return m
}
