/*
 * Copyright (C) 2024 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */


package main

import (
	"fmt"
	"io"
	"strings"
)

func printRstTable(header []rstValue, values [][]rstValue, writer io.StringWriter) {
	rows := append([][]rstValue{header}, values...)
	columnLengths := make([]int, len(header))
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(columnLengths); i++ {
			columnLengths[i] = max(columnLengths[i], len(row[i].render()))
		}
	}
	dividers := make([]rstValue, len(columnLengths))
	for i, length := range columnLengths {
		dividers[i] = val(strings.Repeat("=", length))
	}
	printRow(dividers, columnLengths, writer)
	printRow(header, columnLengths, writer)
	printRow(dividers, columnLengths, writer)
	for _, row := range values {
		printRow(row, columnLengths, writer)
	}
	printRow(dividers, columnLengths, writer)
}

func printRow(values []rstValue, columnLengths []int, writer io.StringWriter) {
	cells := make([]string, len(columnLengths))
	for i := range columnLengths {
		cell := rstValue{}
		// Rows can have less values than the table has columns (e.g. engine captions)
		if i < len(values) {
			cell = values[i]
		}
		rendered := cell.render()
		cells[i] = rendered + strings.Repeat(" ", columnLengths[i]-len(rendered))
	}
	_, _ = writer.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
}

type rstValue struct {
	value string
	bold  bool
}

func (v rstValue) render() string {
	rendered := v.value
	if strings.HasPrefix(rendered, ":") {
		rendered = fmt.Sprintf("\\%s", rendered)
	}
	if v.bold {
		rendered = fmt.Sprintf("**%s**", rendered)
	}
	return rendered
}

func val(value string) rstValue {
	return rstValue{value: value}
}

func vals(value ...string) []rstValue {
	result := make([]rstValue, len(value))
	for i, v := range value {
		result[i] = val(v)
	}
	return result
}
