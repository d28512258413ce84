package raster

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/TISBHACKS2026/intel-igence/crs"
)

// OpenASCIIGrid reads an ESRI ASCII grid (.asc). The CRS must be declared in
// a .prj sidecar next to the grid, either as a bare "EPSG:<code>" or as WKT
// carrying an EPSG authority.
func OpenASCIIGrid(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open raster file: %w", err)
	}
	defer f.Close()

	header := map[string]float64{}
	noData := -9999.0
	var data []float64

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 2 && !isNumeric(fields[0]) {
			key := strings.ToLower(fields[0])
			val, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("bad header line %q: %w", sc.Text(), err)
			}
			if key == "nodata_value" {
				noData = val
			} else {
				header[key] = val
			}
			continue
		}
		for _, fld := range fields {
			v, err := strconv.ParseFloat(fld, 64)
			if err != nil {
				return nil, fmt.Errorf("bad grid value %q: %w", fld, err)
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read raster file: %w", err)
	}

	for _, key := range []string{"ncols", "nrows", "cellsize"} {
		if _, ok := header[key]; !ok {
			return nil, fmt.Errorf("raster header is missing %s", key)
		}
	}
	width := int(header["ncols"])
	height := int(header["nrows"])
	cell := header["cellsize"]

	// The header may anchor the grid by the lower-left cell corner or by the
	// lower-left cell center.
	var xCenter, yCenter float64
	switch {
	case hasKeys(header, "xllcorner", "yllcorner"):
		xCenter = header["xllcorner"] + cell/2
		yCenter = header["yllcorner"] + cell/2
	case hasKeys(header, "xllcenter", "yllcenter"):
		xCenter = header["xllcenter"]
		yCenter = header["yllcenter"]
	default:
		return nil, fmt.Errorf("raster header is missing the grid origin")
	}

	transform := Affine{
		A: cell, C: xCenter,
		E: -cell, F: yCenter + float64(height-1)*cell,
	}

	epsg, err := readPRJ(prjPath(path))
	if err != nil {
		return nil, err
	}

	return New(width, height, epsg, noData, transform, data)
}

func prjPath(rasterPath string) string {
	return strings.TrimSuffix(rasterPath, filepath.Ext(rasterPath)) + ".prj"
}

var epsgAuthority = regexp.MustCompile(`AUTHORITY\[\s*"EPSG"\s*,\s*"?(\d+)"?\s*\]`)

// readPRJ extracts the EPSG code from a projection sidecar file.
func readPRJ(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, &crs.CoordinateSystemError{
			Reason: fmt.Sprintf("raster has no readable projection sidecar (%s)", path),
		}
	}
	content := strings.TrimSpace(string(data))

	if code, ok := strings.CutPrefix(strings.ToUpper(content), "EPSG:"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(code))
		if err == nil {
			return n, nil
		}
	}

	// WKT: the outermost AUTHORITY entry is the last one in the text.
	matches := epsgAuthority.FindAllStringSubmatch(content, -1)
	if len(matches) > 0 {
		n, err := strconv.Atoi(matches[len(matches)-1][1])
		if err == nil {
			return n, nil
		}
	}

	return 0, &crs.CoordinateSystemError{
		Reason: fmt.Sprintf("projection sidecar %s declares no EPSG code", path),
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func hasKeys(m map[string]float64, keys ...string) bool {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
