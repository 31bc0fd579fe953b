// Package catalog хранит статический справочник банков, магазинов и
// электронных кошельков, по которому записи обогащаются для отображения.
// Справочник строится в памяти при старте процесса и только читается.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"orangepass/internal/cli/model"
)

// Entry — одна запись справочника.
type Entry struct {
	Code      string // ключ, на него ссылается Record.Code
	Name      string // полное отображаемое имя
	ShortName string
	Type      model.RecordType
	BIN       string // банковский идентификатор для bank-записей, иначе ""
}

// Catalog — индекс справочника по коду плюс нормализованный поисковый индекс.
type Catalog struct {
	byCode map[string]Entry
	// searchKey[i] — нормализованная строка для entries[i]
	entries    []Entry
	searchKeys []string
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize приводит строку к поисковому виду: нижний регистр, без
// диакритики (вьетнамские имена ищутся латиницей), đ → d.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)
	folded = strings.ReplaceAll(folded, "đ", "d")
	return folded
}

// New строит каталог из встроенного набора записей.
func New() *Catalog {
	return newFromEntries(builtinEntries)
}

func newFromEntries(entries []Entry) *Catalog {
	c := &Catalog{byCode: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		c.byCode[e.Code] = e
		c.entries = append(c.entries, e)
		key := Normalize(e.Code + " " + e.Name + " " + e.ShortName)
		c.searchKeys = append(c.searchKeys, key)
	}
	return c
}

// Get возвращает запись справочника по коду.
func (c *Catalog) Get(code string) (Entry, bool) {
	e, ok := c.byCode[code]
	return e, ok
}

// DisplayName возвращает короткое имя для кода или сам код, если кода нет
// в справочнике.
func (c *Catalog) DisplayName(code string) string {
	if e, ok := c.byCode[code]; ok {
		if e.ShortName != "" {
			return e.ShortName
		}
		return e.Name
	}
	return code
}

// Search ищет подстроку term (без учёта регистра и диакритики) по коду и
// именам; результат отсортирован по коду.
func (c *Catalog) Search(term string) []Entry {
	needle := Normalize(term)
	var res []Entry
	for i, key := range c.searchKeys {
		if strings.Contains(key, needle) {
			res = append(res, c.entries[i])
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Code < res[j].Code })
	return res
}

// ByType возвращает записи справочника одной категории, по коду.
func (c *Catalog) ByType(t model.RecordType) []Entry {
	var res []Entry
	for _, e := range c.entries {
		if e.Type == t {
			res = append(res, e)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Code < res[j].Code })
	return res
}
