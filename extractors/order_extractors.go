package extractors

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"safetyportal/normalization/algorithms"
)

// ErrMessageNoText сообщение для документов без текстового слоя
const ErrMessageNoText = "Could not extract text from PDF. The file may be image-based (scanned) or corrupted."

// ExtractionResult поля заказа, найденные в тексте документа.
// Ненайденное поле всегда пустая строка
type ExtractionResult struct {
	Success      bool   `json:"success"`
	Manufacturer string `json:"manufacturer"`
	Product      string `json:"product"`
	Subtype      string `json:"subtype"`
	Quantity     string `json:"quantity"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Error        string `json:"error,omitempty"`
}

// FailedExtraction возвращает результат неудачного извлечения с сообщением об ошибке
func FailedExtraction(message string) ExtractionResult {
	return ExtractionResult{Success: false, Error: message}
}

// labelRule регулярное выражение метки поля и слова, после которых захваченное значение обрезается
type labelRule struct {
	patterns  []*regexp.Regexp
	stopWords *regexp.Regexp
	minLength int
}

// labelPattern строит выражение вида "<метка>: <остаток строки>"; значение не переходит на следующую строку
func labelPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)\b` + label + `\s*[:;][ \t]*([^\r\n]+)`)
}

// stopWordsPattern отрезает от значения первое вхождение служебного слова и все, что за ним
func stopWordsPattern(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\s+\b(?:` + strings.Join(words, "|") + `)\b.*$`)
}

var (
	manufacturerRule = labelRule{
		patterns: []*regexp.Regexp{
			labelPattern(`manufacturer`),
			labelPattern(`mfr`),
			labelPattern(`vendor`),
			labelPattern(`supplier`),
			labelPattern(`party\s+name`),
		},
		stopWords: stopWordsPattern("product", "quantity", "price", "from", "to"),
		minLength: 3,
	}

	productRule = labelRule{
		patterns: []*regexp.Regexp{
			labelPattern(`product`),
			labelPattern(`item`),
			labelPattern(`material`),
		},
		stopWords: stopWordsPattern("quantity", "qty", "price", "rate", "from", "to"),
		minLength: 3,
	}

	subtypeRule = labelRule{
		patterns: []*regexp.Regexp{
			labelPattern(`type`),
			labelPattern(`product\s+type`),
			labelPattern(`sub\s*-?\s*type`),
		},
		stopWords: stopWordsPattern("quantity", "qty", "price", "rate", "from", "to"),
		minLength: 2,
	}

	fromLocationRule = labelRule{
		patterns: []*regexp.Regexp{
			labelPattern(`from`),
			labelPattern(`origin`),
			labelPattern(`shipped\s+from`),
		},
		stopWords: stopWordsPattern("to", "destination", "delivery", "transport"),
		minLength: 3,
	}

	toLocationRule = labelRule{
		patterns: []*regexp.Regexp{
			labelPattern(`to`),
			labelPattern(`deliver\s+to`),
			labelPattern(`destination`),
			labelPattern(`ship\s+to`),
		},
		stopWords: stopWordsPattern("transport", "rate", "distance", "estimated"),
		minLength: 3,
	}

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)\bquantity[ \t]*[:;.]?[ \t]*([^\r\n]*)`),
		regexp.MustCompile(`(?im)\bqty[ \t]*[:;.]?[ \t]*([^\r\n]*)`),
		regexp.MustCompile(`(?im)\bordered\s*[:;.]?\s*([^\r\n]*)`),
	}

	digitsRe          = regexp.MustCompile(`\d+`)
	digitGroupRe      = regexp.MustCompile(`(\d),(\d{3})`)
	separatorRe       = regexp.MustCompile(`\s*[:;]\s*`)
	lineBreakReplacer = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

// valueCutset символы, снимаемые с краев захваченного значения
const valueCutset = " \t.,;:-_|*#\"'`•"

// document исходный и нормализованный текст документа
type document struct {
	raw   string
	lower string
}

// NormalizeDocumentText строит нормализованную копию текста: переводы строк
// становятся пробелами, ":" и ";" приводятся к ": ", тире к дефису, пробелы схлопываются
func NormalizeDocumentText(raw string) string {
	text := lineBreakReplacer.Replace(norm.NFKC.String(raw))
	text = algorithms.NormalizeWhitespace(text)
	text = separatorRe.ReplaceAllString(text, ": ")
	text = algorithms.NormalizeHyphens(text)
	return strings.TrimSpace(text)
}

// Extract находит поля заказа в тексте, извлеченном из PDF.
//
// Метки ищутся в исходном тексте (важны переводы строк), ключевые слова -
// в нормализованном. Каждое поле извлекается независимо: отсутствие одного
// не мешает остальным. Пустой текст означает, что PDF не содержит текстового слоя
func Extract(rawText string) ExtractionResult {
	if strings.TrimSpace(rawText) == "" {
		return FailedExtraction(ErrMessageNoText)
	}

	doc := document{
		raw:   norm.NFKC.String(rawText),
		lower: strings.ToLower(NormalizeDocumentText(rawText)),
	}

	return ExtractionResult{
		Success:      true,
		Manufacturer: doc.labeled(manufacturerRule),
		Product:      doc.keywordOrLabeled(productKeywords, productRule),
		Subtype:      doc.keywordOrLabeled(subtypeKeywords, subtypeRule),
		Quantity:     doc.quantity(),
		FromLocation: doc.labeled(fromLocationRule),
		ToLocation:   doc.labeled(toLocationRule),
	}
}

// keywordOrLabeled сначала ищет по таблице ключевых слов, затем по меткам
func (d document) keywordOrLabeled(table []keywordRule, rule labelRule) string {
	if value := d.keyword(table); value != "" {
		return value
	}
	return d.labeled(rule)
}

func (d document) keyword(table []keywordRule) string {
	for _, entry := range table {
		for _, kw := range entry.Keywords {
			if strings.Contains(d.lower, kw) {
				return entry.Value
			}
		}
	}
	return ""
}

func (d document) labeled(rule labelRule) string {
	for _, re := range rule.patterns {
		matches := re.FindStringSubmatch(d.raw)
		if len(matches) < 2 {
			continue
		}

		value := cleanValue(matches[1], rule.stopWords)
		if utf8.RuneCountInString(value) >= rule.minLength {
			return value
		}
	}
	return ""
}

func (d document) quantity() string {
	for _, re := range quantityPatterns {
		matches := re.FindStringSubmatch(d.raw)
		if len(matches) < 2 {
			continue
		}

		segment := digitGroupRe.ReplaceAllString(matches[1], "$1$2")
		if digits := digitsRe.FindString(segment); digits != "" {
			return digits
		}
	}
	return ""
}

// cleanValue схлопывает пробелы, отрезает служебные слова и снимает пунктуацию по краям
func cleanValue(value string, stopWords *regexp.Regexp) string {
	value = algorithms.NormalizeHyphens(algorithms.NormalizeWhitespace(value))
	value = strings.Trim(value, valueCutset)
	if stopWords != nil {
		value = stopWords.ReplaceAllString(value, "")
	}
	return strings.Trim(value, valueCutset)
}
