package monitor

import (
	"fmt"
	"testing"
	"time"

	"github.com/mdouchement/gm65d"
	"github.com/stretchr/testify/assert"
)

func TestModel_Add(t *testing.T) {
	m := newTUI()

	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.Local)
	m.Update(gm65d.Scan{ID: "1", ScannedAt: at, Code: "4006381333931"})
	m.Update(gm65d.Scan{ID: "2", ScannedAt: at.Add(time.Second), Code: "!!S#42#F!!"})
	m.Update(gm65d.Scan{ID: "1", ScannedAt: at, Code: "4006381333931"}) // replayed

	rows := m.table.Rows()
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "08:30:01", rows[0][0])
		assert.Equal(t, `"!!S#42#F!!"`, rows[0][1])
		assert.Equal(t, "13", rows[1][2])
	}
}

func TestModel_AddBounded(t *testing.T) {
	m := newTUI()
	for i := 0; i < maxRows+10; i++ {
		m.add(gm65d.Scan{ID: fmt.Sprint(i), ScannedAt: time.Now(), Code: fmt.Sprint(i)})
	}

	assert.Len(t, m.scans, maxRows)
	assert.Len(t, m.seen, maxRows)
	assert.Equal(t, fmt.Sprint(maxRows+9), m.scans[0].Code)
}
