package db

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"gorm.io/gorm"
)

type wordRecord struct {
	Word        string
	Language    string
	Translation string
	Definition  string
}

// LoadWordList reads a CSV of word,language,translation,definition rows and
// upserts them into the words and meanings tables. Languages must exist.
func LoadWordList(conn *gorm.DB, path string) (int, error) {
	if conn == nil {
		return 0, nil
	}
	records, err := readWordList(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		var language Language
		if err := conn.Where("tag = ?", record.Language).First(&language).Error; err != nil {
			return inserted, fmt.Errorf("language %q: %w", record.Language, err)
		}
		word := Word{Text: record.Word}
		if err := conn.FirstOrCreate(&word, Word{Text: record.Word}).Error; err != nil {
			return inserted, err
		}
		meaning := Meaning{
			WordID:      word.ID,
			LanguageTag: language.Tag,
			Translation: record.Translation,
			Definition:  record.Definition,
		}
		if err := conn.FirstOrCreate(&meaning, Meaning{WordID: word.ID, LanguageTag: language.Tag}).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readWordList(path string) ([]wordRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 4
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	records := make([]wordRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "word") {
			continue
		}
		record := wordRecord{
			Word:        strings.TrimSpace(row[0]),
			Language:    strings.TrimSpace(row[1]),
			Translation: strings.TrimSpace(row[2]),
			Definition:  strings.TrimSpace(row[3]),
		}
		if record.Word == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
