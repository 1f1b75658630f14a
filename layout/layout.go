package layout

type Dimension struct {
	Lines   int
	Columns int
}

func NewDimension(lines, columns int) Dimension {
	return Dimension{
		Lines:   lines,
		Columns: columns,
	}
}

func (d Dimension) Contains(pos Position) bool {
	if pos.Line < 0 || pos.Column < 0 {
		return false
	}
	return pos.Line < d.Lines && pos.Column < d.Columns
}
