package chartgeo

import (
	"math"
)

// PieSector is the slice of one row of a pie.
type PieSector struct {
	Sector
	Index   int
	Name    any
	Value   float64
	Percent float64
	Path    string
	Tooltip Point
}

type PieGeometry struct {
	ID      string
	Name    string
	Color   string
	Sectors []PieSector
}

func (PieGeometry) element() {}

// ComputePie splits the angle of the pie between the rows in proportion of
// their values. Every non zero row gets at least minAngle and rows are
// separated by the padding angle. Nothing is drawn when the values sum to 0.
func ComputePie(rows []Row, s *PieSeries, off Offset) PieGeometry {
	geo := PieGeometry{
		ID:    s.ID,
		Name:  s.Name,
		Color: s.Color,
	}
	if len(s.Data) > 0 {
		rows = s.Data
	}
	var (
		values  = make([]float64, len(rows))
		sum     float64
		notZero int
	)
	for i, r := range rows {
		values[i] = s.DataKey.Number(r, 0)
		if !IsWellBehavedNumber(values[i]) {
			values[i] = 0
		}
		sum += values[i]
		if values[i] != 0 {
			notZero++
		}
	}
	if sum <= 0 {
		return geo
	}
	var (
		frame    = pieFrame(s, off)
		sign     = MathSign(s.EndAngle - s.StartAngle)
		delta    = sign * math.Min(math.Abs(s.EndAngle-s.StartAngle), fullcircle)
		absDelta = math.Abs(delta)
		padding  = s.PaddingAngle
		pads     = notZero - 1
	)
	if absDelta >= fullcircle {
		pads = notZero
	}
	var (
		totalPad = float64(pads) * padding
		real     = absDelta - float64(notZero)*s.MinAngle - totalPad
		prev     float64
	)
	for i, r := range rows {
		start := frame.StartAngle
		if i > 0 {
			start = prev + sign*padding
		}
		var (
			val = values[i]
			min float64
		)
		if val != 0 {
			min = s.MinAngle
		}
		end := start + sign*(min+(val/sum)*real)
		prev = end

		sector := frame
		sector.StartAngle, sector.EndAngle = start, end
		ps := PieSector{
			Sector:  sector,
			Index:   i,
			Name:    pieName(s.NameKey, r, i),
			Value:   val,
			Percent: val / sum,
			Tooltip: sector.Anchor(),
		}
		ps.Path, _ = SectorPathWithCorner(sector, Corner{Radius: s.CornerRadius})
		geo.Sectors = append(geo.Sectors, ps)
	}
	return geo
}

func pieFrame(s *PieSeries, off Offset) Sector {
	maxRadius := math.Min(off.Width, off.Height) / 2
	return Sector{
		Cx:          off.Left + s.Cx.Resolve(off.Width, off.Width/2, false),
		Cy:          off.Top + s.Cy.Resolve(off.Height, off.Height/2, false),
		InnerRadius: s.InnerRadius.Resolve(maxRadius, 0, false),
		OuterRadius: s.OuterRadius.Resolve(maxRadius, maxRadius*0.8, false),
		StartAngle:  s.StartAngle,
		EndAngle:    s.EndAngle,
	}
}

func pieName(key DataKey, row Row, index int) any {
	if key.IsZero() {
		return index
	}
	if v := key.Value(row); v != nil {
		return v
	}
	return index
}

// SectorAt gives the index of the sector of the pie under p.
func (g PieGeometry) SectorAt(p Point) (int, bool) {
	for _, s := range g.Sectors {
		if _, ok := InRangeOfSector(p, s.Sector); ok {
			return s.Index, true
		}
	}
	return -1, false
}
