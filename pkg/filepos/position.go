// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package filepos

import (
	"fmt"
)

type Position struct {
	lineNum int // 1 based
	colNum  int // 1 based, 0 when unknown
	file    string
	known   bool
}

func NewPosition(lineNum int) *Position {
	if lineNum <= 0 {
		panic("Lines are 1 based")
	}
	return &Position{lineNum: lineNum, known: true}
}

// NewPositionInFile returns the Position of line "lineNum" within the file "file".
func NewPositionInFile(lineNum int, file string) *Position {
	p := NewPosition(lineNum)
	p.file = file
	return p
}

// NewFullPosition returns a Position that also carries a column.
func NewFullPosition(lineNum, colNum int, file string) *Position {
	p := NewPositionInFile(lineNum, file)
	if colNum > 0 {
		p.colNum = colNum
	}
	return p
}

// NewUnknownPosition is equivalent of zero value *Position.
func NewUnknownPosition() *Position {
	return &Position{}
}

// NewUnknownPositionInFile produces a Position of a known file at an unknown line.
func NewUnknownPositionInFile(file string) *Position {
	return &Position{file: file}
}

func (p *Position) IsKnown() bool { return p != nil && p.known }

func (p *Position) LineNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.lineNum
}

// ColNum returns the column, or 0 when no column was recorded.
func (p *Position) ColNum() int {
	if !p.IsKnown() {
		panic("Position is unknown")
	}
	return p.colNum
}

func (p *Position) GetFile() string {
	return p.file
}

func (p *Position) AsString() string {
	return "line " + p.AsCompactString()
}

// AsCompactString renders "file:line:col", omitting the parts that are
// unknown ("file:?" at minimum).
func (p *Position) AsCompactString() string {
	filePrefix := p.file
	if len(filePrefix) > 0 {
		filePrefix += ":"
	}
	if p.IsKnown() {
		if p.colNum > 0 {
			return fmt.Sprintf("%s%d:%d", filePrefix, p.lineNum, p.colNum)
		}
		return fmt.Sprintf("%s%d", filePrefix, p.lineNum)
	}
	return fmt.Sprintf("%s?", filePrefix)
}

func (p *Position) DeepCopy() *Position {
	if p == nil {
		return nil
	}
	return &Position{lineNum: p.lineNum, colNum: p.colNum, file: p.file, known: p.known}
}
