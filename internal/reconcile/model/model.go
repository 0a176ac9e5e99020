package model

import "github.com/shopspring/decimal"

// Fields: какие колонки читать для активного профиля.
type Fields struct {
	Name          string            // колонка с наименованием (обычно "name")
	Article       string            // колонка с артикулом
	Price         string            // колонка с ценой
	Color         string            // колонка с цветом (опционально)
	AltArticles   []string          // доп. артикулы других поставщиков (только база)
	RequirePrice  bool              // строка без цены исключается из сверки
	HeaderAliases map[string]string // каноническое имя -> "вариант1|вариант2"
}

type Options struct {
	Profile        string  `json:"profile"`
	Threshold      float64 `json:"threshold"`      // порог схожести для fuzzy (0..1)
	ChangePercent  float64 `json:"changePercent"`  // порог «значимого» изменения цены, %
	NumericArticle bool    `json:"numericArticle"` // артикулы сравниваются как числа
	EnableCodes    bool    `json:"enableCodes"`    // этапы 2-3 (коды в наименованиях)
	EnableFuzzy    bool    `json:"enableFuzzy"`    // этап 4 (нечёткое сопоставление)
	Supplier       Fields  `json:"-"`
	Base           Fields  `json:"-"`
}

// ProductRecord — строка прайса/базы после приёма в ядро. Не меняется во время прогона.
type ProductRecord struct {
	Index    int               `json:"index"` // номер исходной строки
	Article  string            `json:"article,omitempty"`
	Name     string            `json:"name"`
	Price    decimal.Decimal   `json:"price"`
	Color    string            `json:"color,omitempty"`
	Capacity string            `json:"capacityMah,omitempty"`
	Alt      map[string]string `json:"alt,omitempty"` // колонка -> альтернативный артикул
}

type MatchKind string

const (
	KindArticle     MatchKind = "article"
	KindBracketCode MatchKind = "bracket_code"
	KindGenericCode MatchKind = "generic_code"
	KindFuzzyName   MatchKind = "fuzzy_name"
)

// MatchedInName: код найден в наименовании базы, а не в колонке артикула.
const MatchedInName = "name"

type MatchRecord struct {
	Key                string          `json:"key"`
	Kind               MatchKind       `json:"kind"`
	MatchedIn          string          `json:"matchedIn,omitempty"`
	SupplierIndex      int             `json:"supplierIndex"`
	BaseIndex          int             `json:"baseIndex"`
	SupplierName       string          `json:"supplierName"`
	BaseName           string          `json:"baseName"`
	SupplierArticle    string          `json:"supplierArticle,omitempty"`
	BaseArticle        string          `json:"baseArticle,omitempty"`
	SupplierPrice      decimal.Decimal `json:"supplierPrice"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	PriceDiff          decimal.Decimal `json:"priceDiff"`
	PriceChangePercent float64         `json:"priceChangePercent"`
	ColorMatch         bool            `json:"colorMatch"`
	CapacityMatch      bool            `json:"capacityMatch"`
	Similarity         *float64        `json:"similarity,omitempty"` // только для fuzzy
}

// FuzzyHint: лучший кандидат из базы по наименованию, справочно.
type FuzzyHint struct {
	BaseIndex int     `json:"baseIndex"`
	BaseName  string  `json:"baseName"`
	Score     float64 `json:"score"`
}

type Stage string

const (
	StageArticle     Stage = "article"
	StageBracketCode Stage = "bracket_code"
	StageGenericCode Stage = "generic_code"
	StageFuzzyName   Stage = "fuzzy_name"
)

// причины, по которым товар попал в новые
const (
	ReasonNoArticle       = "no_article"
	ReasonArticleNotFound = "article_not_in_base"
)

type UnmatchedItem struct {
	Record ProductRecord `json:"record"`
	Stage  Stage         `json:"stage"` // последний пройденный этап
	Reason string        `json:"reason"`
	Hint   *FuzzyHint    `json:"hint,omitempty"`
}

type Report struct {
	SupplierTotal  int             `json:"supplierTotal"`
	BaseTotal      int             `json:"baseTotal"`
	Matches        []MatchRecord   `json:"matches"`
	PriceChanges   []MatchRecord   `json:"priceChanges"`
	NewItems       []UnmatchedItem `json:"newItems"`
	BracketMatches []MatchRecord   `json:"bracketMatches"`
	CodeMatches    []MatchRecord   `json:"codeMatches"`
	FuzzyMatches   []MatchRecord   `json:"fuzzyMatches"`
	UnmatchedCount int             `json:"unmatchedCount"`
	MatchRate      float64         `json:"matchRate"`
	Skipped        int             `json:"skipped"` // строки поставщика без цены
	Opts           Options         `json:"opts"`
}
