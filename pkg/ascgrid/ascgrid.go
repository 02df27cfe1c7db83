// Package ascgrid reads ESRI ASCII raster files into terrain grids.
package ascgrid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sitegrade/sitegrade/internal/terrain"
)

// defaultNoData is assumed when the header omits NODATA_value, matching the
// ESRI convention.
const defaultNoData = -9999.0

// Load reads the ESRI ASCII grid file at path into a terrain grid.
func Load(path string) (*terrain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading terrain file, %s", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("terrain file %s: %w", path, err)
	}
	return g, nil
}

// Parse reads an ESRI ASCII grid. The header carries ncols, nrows, the
// lower-left corner (or lower-left cell center), the cell size and an
// optional NODATA_value; rows of elevations follow north to south.
func Parse(r io.Reader) (*terrain.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	header := make(map[string]float64)
	var pending string
	for sc.Scan() {
		token := sc.Text()
		if _, err := strconv.ParseFloat(token, 64); err == nil {
			// First elevation value; the header is done.
			pending = token
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("header field %s has no value", token)
		}
		value, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("header field %s: %v", token, err)
		}
		header[strings.ToLower(token)] = value
	}

	cols, err := headerCount(header, "ncols")
	if err != nil {
		return nil, err
	}
	rows, err := headerCount(header, "nrows")
	if err != nil {
		return nil, err
	}
	cellSize, ok := header["cellsize"]
	if !ok {
		return nil, fmt.Errorf("header is missing cellsize")
	}
	originX, err := lowerLeft(header, "xllcorner", "xllcenter", cellSize)
	if err != nil {
		return nil, err
	}
	originY, err := lowerLeft(header, "yllcorner", "yllcenter", cellSize)
	if err != nil {
		return nil, err
	}
	noData, ok := header["nodata_value"]
	if !ok {
		noData = defaultNoData
	}

	// Rows arrive north to south; the grid wants row 0 southmost.
	elevations := make([]float64, cols*rows)
	read := 0
	for read < len(elevations) {
		value := pending
		if value == "" {
			if !sc.Scan() {
				break
			}
			value = sc.Text()
		}
		pending = ""

		z, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("elevation value %d: %v", read, err)
		}
		fileRow := read / cols
		col := read % cols
		elevations[(rows-1-fileRow)*cols+col] = z
		read++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading terrain data: %v", err)
	}
	if read != len(elevations) {
		return nil, fmt.Errorf("expected %d elevation values, got %d", len(elevations), read)
	}

	return terrain.New(originX, originY, cellSize, cols, rows, elevations, noData, "")
}

// headerCount reads a dimension field, which must be a positive integer.
func headerCount(header map[string]float64, key string) (int, error) {
	value, ok := header[key]
	if !ok {
		return 0, fmt.Errorf("header is missing %s", key)
	}
	if value != math.Trunc(value) || value <= 0 {
		return 0, fmt.Errorf("header field %s must be a positive integer, got %g", key, value)
	}
	return int(value), nil
}

// lowerLeft resolves the grid origin from either the corner form or the cell
// center form of the header.
func lowerLeft(header map[string]float64, corner, center string, cellSize float64) (float64, error) {
	if value, ok := header[corner]; ok {
		return value, nil
	}
	if value, ok := header[center]; ok {
		return value - cellSize/2, nil
	}
	return 0, fmt.Errorf("header is missing %s (or %s)", corner, center)
}
