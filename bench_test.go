package ssr

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
)

// benchRow is one row of a synthetic table rendered at scale below, its
// field values generated by gofakeit so the benchmark exercises the
// escaper on realistic, unpredictable text rather than a handful of
// hand-picked short strings.
type benchRow struct {
	Name  string
	Email string
	Bio   string
}

func fakeRows(n int) []benchRow {
	f := gofakeit.New(1) // fixed seed: stable benchmark input run to run
	rows := make([]benchRow, n)
	for i := range rows {
		rows[i] = benchRow{
			Name:  f.Name(),
			Email: f.Email(),
			Bio:   f.Sentence(12),
		}
	}
	return rows
}

var benchRowHandle = NewHandle()
var benchTableHandle = NewHandle()

func renderRow(r benchRow) TemplateResult {
	return HTML(benchRowHandle,
		[]string{"<tr><td>", "</td><td>", "</td><td>", "</td></tr>"},
		r.Name, r.Email, r.Bio,
	)
}

func renderTable(rows []benchRow) TemplateResult {
	frags := make([]TemplateResult, len(rows))
	for i, r := range rows {
		frags[i] = renderRow(r)
	}
	return HTML(benchTableHandle, []string{"<table>", "</table>"}, frags)
}

// BenchmarkCollectTable measures end-to-end Collect throughput for a table
// whose row content is realistic, gofakeit-generated text rather than
// static placeholders — the opcode executor and the escaper are the two
// hot paths this benchmark's flame graph should attribute time to.
func BenchmarkCollectTable(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		rows := fakeRows(n)
		b.Run(fmt.Sprintf("rows=%d", n), func(b *testing.B) {
			tr := renderTable(rows)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Collect(context.Background(), tr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkDigest measures the digest hot path in isolation against a
// gofakeit-generated static-fragment set of realistic prose length.
func BenchmarkDigest(b *testing.B) {
	f := gofakeit.New(2)
	statics := []string{"<div>" + f.Paragraph(3, 5, 20, " "), "</div>"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Digest(statics)
	}
}
