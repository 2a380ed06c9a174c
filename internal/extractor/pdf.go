package extractor

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	dspdf "github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in a PDF file.
func PageCount(filename string) (int, error) {
	count, err := api.PageCountFile(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to count PDF pages: %w", err)
	}
	return count, nil
}

// ExtractPageImages extracts the embedded images of a PDF, grouped by page
// number. An empty page selection means all pages.
func ExtractPageImages(filename string, pages []int) (map[int][]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "translater-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var selection []string
	if len(pages) > 0 {
		selection = make([]string, len(pages))
		for i, p := range pages {
			selection[i] = strconv.Itoa(p)
		}
	}

	if err := api.ExtractImagesFile(filename, tempDir, selection, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	return collectPageImages(tempDir)
}

// ExtractEmbeddedText pulls the searchable text layer out of a PDF, keyed by
// page number. Pages without a text layer map to an empty string. An empty
// page selection means all pages.
func ExtractEmbeddedText(filename string, pages []int) (map[int]string, error) {
	reader, err := dspdf.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %q: %w", filename, err)
	}

	total := reader.NumPage()
	if len(pages) == 0 {
		pages = make([]int, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	}

	result := make(map[int]string, len(pages))
	for _, pageNum := range pages {
		if pageNum < 1 || pageNum > total {
			continue
		}
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			result[pageNum] = ""
			continue
		}
		fonts := make(map[string]*dspdf.Font)
		text, err := page.GetPlainText(fonts)
		if err != nil {
			result[pageNum] = ""
			continue
		}
		result[pageNum] = strings.TrimSpace(text)
	}

	return result, nil
}

// HasEmbeddedText reports whether any selected page carries a usable text
// layer. OCR is skipped for documents that answer true.
func HasEmbeddedText(filename string, pages []int) (bool, error) {
	texts, err := ExtractEmbeddedText(filename, pages)
	if err != nil {
		return false, err
	}
	for _, t := range texts {
		if len(strings.Fields(t)) >= 3 {
			return true, nil
		}
	}
	return false, nil
}

// DecryptPDF writes a decrypted copy of an encrypted PDF. The password is
// tried as both the user and the owner password.
func DecryptPDF(inFile, outFile, password string) error {
	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	conf.OwnerPW = password
	if err := api.DecryptFile(inFile, outFile, conf); err != nil {
		return fmt.Errorf("failed to decrypt PDF: %w", err)
	}
	return nil
}

// ParsePageSelection parses a selection like "3", "1-5" or "1,3,7-9" into an
// ordered page list. Empty input selects all pages.
func ParsePageSelection(selection string) ([]int, error) {
	if selection == "" {
		return nil, nil
	}

	var pages []int
	for _, token := range strings.Split(selection, ",") {
		token = strings.TrimSpace(token)
		expanded, err := expandPageToken(token)
		if err != nil {
			return nil, err
		}
		pages = append(pages, expanded...)
	}
	return pages, nil
}

func expandPageToken(token string) ([]int, error) {
	if !strings.Contains(token, "-") {
		page, err := strconv.Atoi(token)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page number: %q", token)
		}
		return []int{page}, nil
	}

	bounds := strings.SplitN(token, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid range start: %q", bounds[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid range end: %q", bounds[1])
	}
	if start < 1 || start > end {
		return nil, fmt.Errorf("invalid page range: %q", token)
	}

	out := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, p)
	}
	return out, nil
}

// collectPageImages loads every extracted image below dir, grouped by the
// page number encoded in pdfcpu's page_<num>_... filenames.
func collectPageImages(dir string) (map[int][]image.Image, error) {
	type entry struct {
		page int
		name string
		img  image.Image
	}
	var entries []entry

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		pageNum, err := pageFromFilename(info.Name())
		if err != nil {
			return nil
		}
		img, err := loadImageFile(path)
		if err != nil {
			return nil
		}
		entries = append(entries, entry{page: pageNum, name: info.Name(), img: img})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Walk order is not guaranteed; sort so images within a page keep the
	// extraction index order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].page != entries[j].page {
			return entries[i].page < entries[j].page
		}
		return entries[i].name < entries[j].name
	})

	result := make(map[int][]image.Image)
	for _, e := range entries {
		result[e.page] = append(result[e.page], e.img)
	}
	return result, nil
}

func pageFromFilename(filename string) (int, error) {
	if !strings.HasPrefix(filename, "page_") {
		return 0, errors.New("not a page image file")
	}
	parts := strings.Split(filename, "_")
	if len(parts) < 2 {
		return 0, errors.New("unexpected extracted image filename")
	}
	return strconv.Atoi(parts[1])
}
