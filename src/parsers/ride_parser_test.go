package parsers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/username/ridecost/src/models"
)

const rideHeader = "route,date,daytype,rides\n"

func writeRides(t *testing.T, content string) string {
	t.Helper()
	fp := filepath.Join(t.TempDir(), "ctabus.csv")
	if err := os.WriteFile(fp, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return fp
}

func TestReadRides_SingleRowAllRowShapes(t *testing.T) {
	fp := writeRides(t, rideHeader+"X,1/1/2019,W,100\n")
	want := models.RideRecord{Route: "X", Date: "1/1/2019", DayType: "W", Rides: 100}

	for _, shape := range []models.Shape{models.ShapeTuple, models.ShapeMapping, models.ShapeRecord} {
		set, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if set.Len() != 1 {
			t.Fatalf("%s: len = %d, want 1", shape, set.Len())
		}
		if got := set.Rows[0].Record(); got != want {
			t.Errorf("%s: record = %+v, want %+v", shape, got, want)
		}
		if set.Source != fp {
			t.Errorf("%s: source = %q", shape, set.Source)
		}
	}
}

func TestReadMappings_DerivesYear(t *testing.T) {
	fp := writeRides(t, rideHeader+"X,1/1/2019,W,100\n")
	rows, err := ReadMappings(fp)
	if err != nil {
		t.Fatalf("ReadMappings: %v", err)
	}
	want := models.RideMap{"route": "X", "date": "1/1/2019", "daytype": "W", "rides": 100, "year": 2019}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("mapping = %#v, want %#v", rows[0], want)
	}
	if rows[0].Year() != 2019 {
		t.Errorf("Year() = %d", rows[0].Year())
	}
}

func TestReadTuples_FixedOrder(t *testing.T) {
	fp := writeRides(t, rideHeader+"3,01/01/2001,U,7354\n4,01/01/2001,U,9288\n")
	rows, err := ReadTuples(fp)
	if err != nil {
		t.Fatalf("ReadTuples: %v", err)
	}
	want := []models.RideTuple{
		{"3", "01/01/2001", "U", 7354},
		{"4", "01/01/2001", "U", 9288},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("tuples = %#v, want %#v", rows, want)
	}
}

func TestReadRides_SameLengthAcrossRowShapes(t *testing.T) {
	content := rideHeader +
		"3,01/01/2001,U,7354\n" +
		"4,01/01/2001,U,9288\n" +
		"6,01/01/2001,U,6048\n" +
		"\"J14\",\"01/02/2001\",W,1000\n"
	fp := writeRides(t, content)
	dataRows := strings.Count(content, "\n") - 1

	for _, shape := range []models.Shape{models.ShapeTuple, models.ShapeMapping, models.ShapeRecord} {
		set, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if set.Len() != dataRows {
			t.Errorf("%s: len = %d, want %d", shape, set.Len(), dataRows)
		}
	}
}

func TestReadRecords_PreservesFileOrder(t *testing.T) {
	fp := writeRides(t, rideHeader+"b,1/1/2019,W,2\na,1/1/2019,W,1\nc,1/1/2019,W,3\n")
	rows, err := ReadRecords(fp)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	var routes []string
	for _, r := range rows {
		routes = append(routes, r.Route)
	}
	if strings.Join(routes, "") != "bac" {
		t.Errorf("order = %v", routes)
	}
}

func TestReadRecords_QuotedFields(t *testing.T) {
	fp := writeRides(t, rideHeader+"\"X, express\",1/1/2019,W,\"1200\"\n")
	rows, err := ReadRecords(fp)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if rows[0].Route != "X, express" || rows[0].Rides != 1200 {
		t.Errorf("record = %+v", rows[0])
	}
}

func TestReadRides_Idempotent(t *testing.T) {
	fp := writeRides(t, rideHeader+"3,01/01/2001,U,7354\n4,01/01/2001,U,9288\n")
	for _, shape := range models.Shapes {
		first, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		second, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("%s: repeated reads differ", shape)
		}
	}
}

func TestReadRides_HeaderOnly(t *testing.T) {
	fp := writeRides(t, rideHeader)
	for _, shape := range []models.Shape{models.ShapeTuple, models.ShapeMapping, models.ShapeRecord} {
		set, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if set.Rows == nil || len(set.Rows) != 0 {
			t.Errorf("%s: rows = %#v, want empty non-nil", shape, set.Rows)
		}
	}

	// Unparsed shapes keep the header: it is file content like any other.
	text, err := ReadRawText(fp)
	if err != nil {
		t.Fatalf("ReadRawText: %v", err)
	}
	if text != rideHeader {
		t.Errorf("raw text = %q, want %q", text, rideHeader)
	}
	lines, err := ReadLines(fp)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{rideHeader}) {
		t.Errorf("lines = %#v, want only the header", lines)
	}
}

func TestReadRides_EmptyFile(t *testing.T) {
	fp := writeRides(t, "")
	for _, shape := range models.Shapes {
		set, err := ReadRides(fp, shape)
		if err != nil {
			t.Fatalf("%s: %v", shape, err)
		}
		if set.Len() != 0 {
			t.Errorf("%s: len = %d, want 0", shape, set.Len())
		}
	}
	text, err := ReadRawText(fp)
	if err != nil || text != "" {
		t.Errorf("ReadRawText = %q, %v", text, err)
	}
}

func TestReadRawTextAndLines_Unparsed(t *testing.T) {
	content := rideHeader + "X,1/1/2019,W,not-a-number\nY,1/2/2019,A,5"
	fp := writeRides(t, content)

	text, err := ReadRawText(fp)
	if err != nil {
		t.Fatalf("ReadRawText: %v", err)
	}
	if text != content {
		t.Errorf("raw text = %q", text)
	}

	lines, err := ReadLines(fp)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	want := []string{rideHeader, "X,1/1/2019,W,not-a-number\n", "Y,1/2/2019,A,5"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %#v, want %#v", lines, want)
	}
}

func TestReadRides_NonNumericRides(t *testing.T) {
	fp := writeRides(t, rideHeader+"X,1/1/2019,W,100\nY,1/2/2019,W,lots\n")
	_, err := ReadRides(fp, models.ShapeRecord)
	if !errors.Is(err, models.ErrFormat) {
		t.Fatalf("err = %v, want format error", err)
	}
	var formatErr *models.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err %T is not a *FormatError", err)
	}
	if formatErr.Line != 3 || formatErr.Field != "rides" {
		t.Errorf("line=%d field=%q, want line 3 field rides", formatErr.Line, formatErr.Field)
	}
	if formatErr.Text != "Y,1/2/2019,W,lots" {
		t.Errorf("text = %q", formatErr.Text)
	}
}

func TestReadRides_TooFewColumns(t *testing.T) {
	fp := writeRides(t, rideHeader+"X,1/1/2019,W\n")
	_, err := ReadRides(fp, models.ShapeTuple)
	if !errors.Is(err, models.ErrFormat) {
		t.Fatalf("err = %v, want format error", err)
	}
}

func TestReadMappings_MalformedDate(t *testing.T) {
	fp := writeRides(t, rideHeader+"X,2019-01-01,W,100\n")
	_, err := ReadMappings(fp)
	var formatErr *models.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err = %v, want *FormatError", err)
	}
	if formatErr.Field != "date" || formatErr.Line != 2 {
		t.Errorf("field=%q line=%d", formatErr.Field, formatErr.Line)
	}

	// The same row is fine for shapes that do not derive a year.
	if _, err := ReadRecords(fp); err != nil {
		t.Errorf("ReadRecords: %v", err)
	}
}

func TestReadRides_MissingFile(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "missing.csv")
	for _, shape := range models.Shapes {
		_, err := ReadRides(fp, shape)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("%s: err = %v, want ErrNotFound", shape, err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("%s: err = %v, want fs.ErrNotExist", shape, err)
		}
	}
}

func TestReadRides_DirectoryPath(t *testing.T) {
	dir := t.TempDir()
	for _, shape := range models.Shapes {
		_, err := ReadRides(dir, shape)
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("%s: err = %v, want ErrNotFound", shape, err)
		}
		if errors.Is(err, models.ErrFormat) {
			t.Errorf("%s: err = %v, directory reported as a format error", shape, err)
		}
	}
}

func TestReadRecords_BareQuoteInField(t *testing.T) {
	fp := writeRides(t, rideHeader+"X\"1,1/1/2019,W,5\n")
	rows, err := ReadRecords(fp)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	want := models.RideRecord{Route: "X\"1", Date: "1/1/2019", DayType: "W", Rides: 5}
	if len(rows) != 1 || rows[0] != want {
		t.Errorf("rows = %+v, want [%+v]", rows, want)
	}
}

func TestReadRideRows_ReadErrorIsNotFormatError(t *testing.T) {
	readErr := errors.New("disk gone")
	_, err := ReadRideRows(iotest.ErrReader(readErr), func(rec models.RideRecord) (models.RideRecord, error) {
		return rec, nil
	})
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want the read error", err)
	}
	if errors.Is(err, models.ErrFormat) {
		t.Errorf("err = %v, read failure reported as a format error", err)
	}
}

func TestGetRowBuilder_UnknownShape(t *testing.T) {
	for _, shape := range []models.Shape{"dataframe", models.ShapeRawText, models.ShapeLineList} {
		if _, err := GetRowBuilder(shape); !errors.Is(err, models.ErrUnknownShape) {
			t.Errorf("%q: err = %v, want ErrUnknownShape", shape, err)
		}
	}

	fp := writeRides(t, rideHeader)
	if _, err := ReadRides(fp, "dataframe"); !errors.Is(err, models.ErrUnknownShape) {
		t.Errorf("ReadRides err = %v, want ErrUnknownShape", err)
	}
}

func TestReadRideRows_CustomBuilder(t *testing.T) {
	r := strings.NewReader(rideHeader + "3,01/01/2001,U,7354\n4,01/01/2001,U,9288\n")
	totals, err := ReadRideRows(r, func(rec models.RideRecord) (int, error) {
		return rec.Rides, nil
	})
	if err != nil {
		t.Fatalf("ReadRideRows: %v", err)
	}
	if !reflect.DeepEqual(totals, []int{7354, 9288}) {
		t.Errorf("totals = %v", totals)
	}
}
