// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package record

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/etable"
)

// WriteCSV writes the recorded rows as comma separated values with a header row
func (rc *Recorder) WriteCSV(w io.Writer) error {
	rc.Trim()
	return rc.Table.WriteCSV(w, etable.Comma, etable.Headers)
}

// ArrowSchema returns the Arrow schema of the sample table
func ArrowSchema() *arrow.Schema {
	fs := make([]arrow.Field, len(Columns))
	for i, cn := range Columns {
		fs[i] = arrow.Field{Name: cn, Type: arrow.PrimitiveTypes.Float64}
	}
	return arrow.NewSchema(fs, nil)
}

// WriteArrow writes the recorded rows as one record batch of an Arrow IPC file
func (rc *Recorder) WriteArrow(w io.Writer) error {
	mem := memory.NewGoAllocator()
	schema := ArrowSchema()
	bld := array.NewRecordBuilder(mem, schema)
	defer bld.Release()
	for i := range Columns {
		bld.Field(i).(*array.Float64Builder).AppendValues(rc.vals[i][:rc.Row], nil)
	}
	rec := bld.NewRecord()
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("record: arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("record: arrow write: %w", err)
	}
	return fw.Close()
}

// Save writes the samples to path, as an Arrow IPC file for the .arrow
// extension and as CSV otherwise.
func (rc *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) == ".arrow" {
		err = rc.WriteArrow(f)
	} else {
		err = rc.WriteCSV(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if st, serr := os.Stat(path); serr == nil {
		rc.log.Info("samples saved", "path", path, "rows", rc.Row, "size", datasize.ByteSize(st.Size()).HumanReadable())
	}
	return nil
}
