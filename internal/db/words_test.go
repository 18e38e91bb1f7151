package db

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestConn(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return conn
}

func writeWordList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	return path
}

func TestLoadWordList(t *testing.T) {
	conn := newTestConn(t)
	if err := conn.Create(&Language{Tag: "en", Name: "English"}).Error; err != nil {
		t.Fatalf("create language: %v", err)
	}
	path := writeWordList(t, "word,language,translation,definition\n"+
		"serendipity,en,serendipity,finding good things without looking for them\n"+
		"petrichor,en,petrichor,the smell of earth after rain\n")

	loaded, err := LoadWordList(conn, path)
	if err != nil {
		t.Fatalf("load word list: %v", err)
	}
	if loaded != 2 {
		t.Fatalf("expected 2 meanings loaded, got %d", loaded)
	}

	var words int64
	if err := conn.Model(&Word{}).Count(&words).Error; err != nil {
		t.Fatalf("count words: %v", err)
	}
	if words != 2 {
		t.Fatalf("expected 2 words, got %d", words)
	}

	// Reloading the same file must not duplicate rows.
	if _, err := LoadWordList(conn, path); err != nil {
		t.Fatalf("reload word list: %v", err)
	}
	var meanings int64
	if err := conn.Model(&Meaning{}).Count(&meanings).Error; err != nil {
		t.Fatalf("count meanings: %v", err)
	}
	if meanings != 2 {
		t.Fatalf("expected 2 meanings after reload, got %d", meanings)
	}
}

func TestLoadWordListUnknownLanguage(t *testing.T) {
	conn := newTestConn(t)
	path := writeWordList(t, "serendipity,xx,serendipity,finding good things without looking for them\n")

	if _, err := LoadWordList(conn, path); err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	conn := newTestConn(t)
	if err := conn.Create(&Word{Text: "petrichor"}).Error; err != nil {
		t.Fatalf("create word: %v", err)
	}
	err := conn.Create(&Word{Text: "petrichor"}).Error
	if err == nil {
		t.Fatal("expected a unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected IsUniqueViolation for %v", err)
	}
}
