package utils

import (
	"bytes"
	"encoding/csv"
	"strconv"

	courseModels "academia/models/course"
)

// utf8BOM makes Excel open the export with the right encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EnrollmentsCSV renders enrollment records as UTF-8 CSV with BOM. The
// column set and order is fixed; downstream spreadsheets depend on it.
func EnrollmentsCSV(enrollments []courseModels.Enrollment) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)

	header := []string{"Nombre", "Documento", "Cargo", "Empresa", "Curso ID", "Progreso (%)", "Completado", "Fecha Inscripción", "Estado"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range enrollments {
		completado := "No"
		estado := "En curso"
		if e.Completed {
			completado = "Sí"
			estado = "Completado"
		}

		record := []string{
			e.FullName,
			e.Document,
			e.JobTitle,
			e.Company,
			strconv.FormatUint(uint64(e.CourseID), 10),
			strconv.Itoa(e.Progress),
			completado,
			e.CreatedAt.Format("2006-01-02 15:04"),
			estado,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
