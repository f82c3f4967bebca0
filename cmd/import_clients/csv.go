package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Proyectos-api/internal/application/dto"
	"github.com/jhoicas/Proyectos-api/internal/application/validation"
)

var requiredColumns = []string{"nombre", "rubro", "email", "telefono"}

// Row cliente listo para crear, con su línea de origen.
type Row struct {
	Line    int
	Request dto.CreateClientRequest
}

// Rejected fila descartada y el motivo.
type Rejected struct {
	Line int
	Err  error
}

func isLatin1(enc string) bool {
	switch enc {
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1", "windows-1252", "cp1252":
		return true
	}
	return false
}

// latin1Reader decodifica Windows-1252, superconjunto de ISO-8859-1 que usan las hojas de
// cálculo al exportar en español.
func latin1Reader(r io.Reader) io.Reader {
	return transform.NewReader(r, charmap.Windows1252.NewDecoder())
}

// ReadClients parsea el CSV y valida cada fila con las mismas reglas que la API.
func ReadClients(r io.Reader) ([]Row, []Rejected, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, err
	}
	cr := csv.NewReader(br)
	cr.Comma = detectComma(string(header))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	cols, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("encabezado: %w", err)
	}
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, nil, fmt.Errorf("encabezado: falta la columna %q", c)
		}
	}

	var rows []Row
	var rejected []Rejected
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			rejected = append(rejected, Rejected{Line: line, Err: err})
			continue
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		req := dto.CreateClientRequest{
			Nombre:    get("nombre"),
			Rubro:     get("rubro"),
			Email:     strings.ToLower(get("email")),
			Telefono:  get("telefono"),
			Direccion: get("direccion"),
			Notas:     get("notas"),
		}
		if err := validation.Struct(req); err != nil {
			rejected = append(rejected, Rejected{Line: line, Err: err})
			continue
		}
		rows = append(rows, Row{Line: line, Request: req})
	}
	return rows, rejected, nil
}

func detectComma(sample string) rune {
	first := sample
	if i := strings.IndexAny(sample, "\r\n"); i >= 0 {
		first = sample[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}
