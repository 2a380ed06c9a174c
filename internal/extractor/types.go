// Package extractor turns input documents into the raw material the
// translation pipeline works on: page images for OCR, embedded text where a
// document carries it, and basic document metadata.
package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileType identifies the supported input document formats.
type FileType string

const (
	FileTypePDF     FileType = "pdf"
	FileTypeImage   FileType = "image"
	FileTypeDOCX    FileType = "docx"
	FileTypeUnknown FileType = "unknown"
)

// charsPerPage is the character count used to estimate page counts for
// formats without an intrinsic page structure.
const charsPerPage = 3000

// DocumentInfo describes an input document before processing starts.
type DocumentInfo struct {
	Path       string   `json:"path"`
	Type       FileType `json:"type"`
	FileSizeKB float64  `json:"file_size_kb"`
	PageCount  int      `json:"page_count"`
}

// DetectFileType classifies a path by its extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FileTypePDF
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".gif", ".webp":
		return FileTypeImage
	case ".docx":
		return FileTypeDOCX
	default:
		return FileTypeUnknown
	}
}

// Probe inspects a document on disk and returns its metadata without
// performing any extraction work beyond what page counting requires.
func Probe(path string) (*DocumentInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}

	info := &DocumentInfo{
		Path:       path,
		Type:       DetectFileType(path),
		FileSizeKB: float64(stat.Size()) / 1024.0,
	}

	switch info.Type {
	case FileTypePDF:
		count, err := PageCount(path)
		if err != nil {
			return nil, err
		}
		info.PageCount = count
	case FileTypeImage:
		info.PageCount = 1
	case FileTypeDOCX:
		text, err := ExtractDOCXText(path)
		if err != nil {
			return nil, err
		}
		info.PageCount = estimatePageCount(text)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}

	return info, nil
}

func estimatePageCount(text string) int {
	if text == "" {
		return 1
	}
	pages := (len([]rune(text)) + charsPerPage - 1) / charsPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}
