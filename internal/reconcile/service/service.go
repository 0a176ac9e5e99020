package service

import (
	"strings"

	"price-recon/internal/reconcile/model"
)

// DefaultChangePercent — изменение цены больше этого (по модулю) считается значимым.
const DefaultChangePercent = 5.0

// Run — полная сверка по сырым строкам: проверка маппинга, приём строк, этапы 1-4.
// Ошибка возвращается только при неверном маппинге колонок (см. FieldError).
func Run(supplierRows, baseRows []map[string]string, opt model.Options) (model.Report, error) {
	if err := CheckFields(supplierRows, opt.Supplier, DatasetSupplier); err != nil {
		return model.Report{}, err
	}
	if err := CheckFields(baseRows, opt.Base, DatasetBase); err != nil {
		return model.Report{}, err
	}

	supplier, skipped := ToRecords(supplierRows, opt.Supplier, opt.NumericArticle)
	base, _ := ToRecords(baseRows, opt.Base, opt.NumericArticle)

	res := Reconcile(supplier, base, opt)
	res.Skipped = skipped
	return res, nil
}

// Reconcile — конвейер над уже принятыми записями. Входные срезы не меняются.
//
//	(1) артикул -> (2) код в скобках -> (3) бренд/общий код -> (4) fuzzy по наименованию
//
// Каждый этап работает только с тем, что не закрепили предыдущие.
func Reconcile(supplier, base []model.ProductRecord, opt model.Options) model.Report {
	threshold := opt.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	changeLimit := opt.ChangePercent
	if changeLimit <= 0 {
		changeLimit = DefaultChangePercent
	}

	st := stageResults{}

	// (1) Артикулы
	var pool []pending
	st.article, st.changes, pool = matchByArticle(supplier, base, changeLimit)
	stage := model.StageArticle

	// (2)+(3) Коды в наименованиях
	if opt.EnableCodes {
		brIdx := codeIndex(base, opt.Base.AltArticles, BracketCode, bracketOrBare)
		st.bracket, pool = matchByCode(pool, brIdx, BracketCode, model.KindBracketCode)

		genIdx := codeIndex(base, opt.Base.AltArticles, secondary, secondary)
		st.generic, pool = matchByCode(pool, genIdx, secondary, model.KindGenericCode)
		stage = model.StageGenericCode
	}

	// (4) Fuzzy + подсказки для оставшихся
	names := buildNameIndex(base)
	if opt.EnableFuzzy {
		st.fuzzy, st.unmatched = matchByName(pool, names, threshold)
	} else {
		st.unmatched = hintOnly(pool, names, stage)
	}

	rep := aggregate(len(supplier), len(base), st)
	rep.Opts = opt
	rep.Opts.Threshold = threshold
	rep.Opts.ChangePercent = changeLimit
	return rep
}

// bracketOrBare для колонок артикула: код в скобках или само значение, если оно похоже на код.
func bracketOrBare(v string) (string, bool) {
	if c, ok := BracketCode(v); ok {
		return c, true
	}
	up := strings.ToUpper(strings.TrimSpace(v))
	if isBareCode(up) {
		return up, true
	}
	return "", false
}

func secondary(name string) (string, bool) {
	c, _, ok := SecondaryKey(name)
	return c, ok
}

// hintOnly: fuzzy выключен, лучший кандидат ищется только справочно.
func hintOnly(pool []pending, names *nameIndex, stage model.Stage) []model.UnmatchedItem {
	out := make([]model.UnmatchedItem, 0, len(pool))
	for _, p := range pool {
		b, score, ok := names.best(p.rec.Name)
		out = append(out, unmatched(p, stage, b, score, ok))
	}
	return out
}
