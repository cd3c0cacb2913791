package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
)

// MaxLabelPieces caps a label export at 100 sheets.
const MaxLabelPieces = 100 * labelsPerPage

// ErrTooManyLabels is returned for plans with more than MaxLabelPieces pieces.
var ErrTooManyLabels = errors.New("too many pieces for a label sheet")

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	Tape       int     `json:"tape"`
	TapeLength float64 `json:"tape_m"`
	Piece      int     `json:"piece"`
	Pieces     int     `json:"pieces"`
	Class      string  `json:"class"`
	Length     float64 `json:"length_m"`
	Offset     float64 `json:"offset_m"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per cut piece.
// Each label names the tape and piece, and the QR code encodes the
// LabelInfo as JSON.
func ExportLabels(path string, alloc model.Allocation) error {
	labels, err := CollectLabelInfos(alloc)
	if err != nil {
		return fmt.Errorf("failed to export labels: %w", err)
	}
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for tape %d piece %d: %w", label.Tape, label.Piece, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.Tape, info.Piece)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Class marker
	c := classAColor
	if info.Class == model.ClassB.String() {
		c = classBColor
	}
	pdf.SetFillColor(c.R, c.G, c.B)
	pdf.Rect(textX, y+labelPadding, 3, 4.5, "F")

	title, tape, position := labelText(info)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX+4, y+labelPadding)
	pdf.CellFormat(textW-4, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, tape, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, position, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// labelText returns the piece, tape and position lines printed on a label.
func labelText(info LabelInfo) (title, tape, position string) {
	title = fmt.Sprintf("%s %.1f m", info.Class, info.Length)
	tape = fmt.Sprintf("Tape %d (%s m)", info.Tape, planner.FormatMeters(info.TapeLength))
	position = fmt.Sprintf("Piece %d of %d @ %s m", info.Piece, info.Pieces, planner.FormatMeters(info.Offset))
	return title, tape, position
}

// CollectLabelInfos lists one LabelInfo per piece, tapes in allocation
// order and pieces in cutting order. Plans with more than MaxLabelPieces
// pieces are refused before anything is expanded.
func CollectLabelInfos(alloc model.Allocation) ([]LabelInfo, error) {
	if n := alloc.PieceCount(); n > MaxLabelPieces {
		return nil, fmt.Errorf("%d pieces, limit %d: %w", n, MaxLabelPieces, ErrTooManyLabels)
	}
	var labels []LabelInfo
	for tapeIdx, g := range alloc.Groups {
		pieces := g.Pieces()
		for i, p := range pieces {
			labels = append(labels, LabelInfo{
				Tape:       tapeIdx + 1,
				TapeLength: g.TapeLength,
				Piece:      i + 1,
				Pieces:     len(pieces),
				Class:      p.Class.String(),
				Length:     p.Length,
				Offset:     p.Offset,
			})
		}
	}
	return labels, nil
}
