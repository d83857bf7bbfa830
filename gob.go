package flatspatial

import (
	"bytes"
	"container/heap"
	"encoding/gob"
	"fmt"

	"github.com/Uriopass/flat-spatial/geom"
	"github.com/Uriopass/flat-spatial/internal/bitmap"
)

// gobVersion guards the encoded layout of all three grids. Bump it on
// any change to the slot structs below.
const gobVersion = 1

func checkGobVersion(v int) error {
	if v != gobVersion {
		return fmt.Errorf("unsupported grid snapshot version %d (want %d)", v, gobVersion)
	}
	return nil
}

// ensureOptions restores default logger/metrics after decoding into a
// zero-valued grid.
func (o *options) ensure() {
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
}

type gridSlotGob[O any] struct {
	Gen     uint32
	Live    bool
	Pos     geom.Vec2
	CellPos geom.Vec2
	Obj     O
}

// GobEncode implements gob.GobEncoder for Grid. The cell index is not
// encoded; it is a pure function of the slots and is rebuilt on decode,
// including the stale membership of dirty objects.
func (g *Grid[O]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(gobVersion); err != nil {
		return nil, err
	}

	if err := encoder.Encode(g.cellSize); err != nil {
		return nil, err
	}

	slots := make([]gridSlotGob[O], len(g.table.slots))
	for i, s := range g.table.slots {
		slots[i] = gridSlotGob[O]{
			Gen:     s.gen,
			Live:    s.live,
			Pos:     s.val.pos,
			CellPos: s.val.cellPos,
			Obj:     s.val.obj,
		}
	}
	if err := encoder.Encode(slots); err != nil {
		return nil, err
	}

	if err := encoder.Encode([]uint32(g.table.free)); err != nil {
		return nil, err
	}

	dirty, err := g.dirty.ToBytes()
	if err != nil {
		return nil, err
	}
	if err := encoder.Encode(dirty); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder for Grid.
func (g *Grid[O]) GobDecode(data []byte) error {
	decoder := gob.NewDecoder(bytes.NewBuffer(data))

	var version int
	if err := decoder.Decode(&version); err != nil {
		return err
	}
	if err := checkGobVersion(version); err != nil {
		return err
	}

	if err := decoder.Decode(&g.cellSize); err != nil {
		return err
	}

	var slots []gridSlotGob[O]
	if err := decoder.Decode(&slots); err != nil {
		return err
	}

	var free []uint32
	if err := decoder.Decode(&free); err != nil {
		return err
	}

	var dirty []byte
	if err := decoder.Decode(&dirty); err != nil {
		return err
	}
	db, err := bitmap.FromBytes(dirty)
	if err != nil {
		return err
	}

	g.table = NewHandleTable[gridObject[O]]()
	g.cells = NewCellIndex[pointEntry]()
	g.dirty = db
	g.table.slots = make([]tableSlot[gridObject[O]], len(slots))
	for i, s := range slots {
		ts := &g.table.slots[i]
		ts.gen = s.Gen
		ts.live = s.Live
		if !s.Live {
			continue
		}
		c := CellAt(g.cellSize, s.CellPos)
		ts.val = gridObject[O]{pos: s.Pos, cellPos: s.CellPos, cell: c, obj: s.Obj}
		h := Handle{slot: uint32(i), gen: s.Gen}
		g.cells.Add(c, pointEntry{h: h, pos: s.CellPos})
		g.table.live++
	}
	g.table.free = slotHeap(free)
	heap.Init(&g.table.free)

	g.opts.ensure()
	return nil
}

type aabbSlotGob[O any] struct {
	Gen  uint32
	Live bool
	Box  geom.AABB
	Obj  O
}

// GobEncode implements gob.GobEncoder for AABBGrid. Occupied-cell lists
// are recomputed from the boxes on decode.
func (ag *AABBGrid[O]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(gobVersion); err != nil {
		return nil, err
	}

	if err := encoder.Encode(ag.cellSize); err != nil {
		return nil, err
	}

	slots := make([]aabbSlotGob[O], len(ag.table.slots))
	for i, s := range ag.table.slots {
		slots[i] = aabbSlotGob[O]{
			Gen:  s.gen,
			Live: s.live,
			Box:  s.val.box,
			Obj:  s.val.obj,
		}
	}
	if err := encoder.Encode(slots); err != nil {
		return nil, err
	}

	if err := encoder.Encode([]uint32(ag.table.free)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder for AABBGrid.
func (ag *AABBGrid[O]) GobDecode(data []byte) error {
	decoder := gob.NewDecoder(bytes.NewBuffer(data))

	var version int
	if err := decoder.Decode(&version); err != nil {
		return err
	}
	if err := checkGobVersion(version); err != nil {
		return err
	}

	if err := decoder.Decode(&ag.cellSize); err != nil {
		return err
	}

	var slots []aabbSlotGob[O]
	if err := decoder.Decode(&slots); err != nil {
		return err
	}

	var free []uint32
	if err := decoder.Decode(&free); err != nil {
		return err
	}

	ag.table = NewHandleTable[aabbObject[O]]()
	ag.cells = NewCellIndex[Handle]()
	ag.table.slots = make([]tableSlot[aabbObject[O]], len(slots))
	for i, s := range slots {
		ts := &ag.table.slots[i]
		ts.gen = s.Gen
		ts.live = s.Live
		if !s.Live {
			continue
		}
		ts.val = aabbObject[O]{box: s.Box, obj: s.Obj}
		h := Handle{slot: uint32(i), gen: s.Gen}
		ts.val.occupied = ag.occupy(h, s.Box, nil)
		ag.table.live++
	}
	ag.table.free = slotHeap(free)
	heap.Init(&ag.table.free)

	ag.opts.ensure()
	return nil
}

type shapeSlotGob[O any] struct {
	Gen   uint32
	Live  bool
	Shape geom.Shape
	Obj   O
}

// GobEncode implements gob.GobEncoder for ShapeGrid. Concrete shape
// types travel as gob interface values; geom registers its shapes at
// init, and callers storing custom shapes must gob.Register them.
func (sg *ShapeGrid[O]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(gobVersion); err != nil {
		return nil, err
	}

	if err := encoder.Encode(sg.cellSize); err != nil {
		return nil, err
	}

	slots := make([]shapeSlotGob[O], len(sg.table.slots))
	for i, s := range sg.table.slots {
		slots[i] = shapeSlotGob[O]{
			Gen:   s.gen,
			Live:  s.live,
			Shape: s.val.shape,
			Obj:   s.val.obj,
		}
	}
	if err := encoder.Encode(slots); err != nil {
		return nil, err
	}

	if err := encoder.Encode([]uint32(sg.table.free)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder for ShapeGrid.
func (sg *ShapeGrid[O]) GobDecode(data []byte) error {
	decoder := gob.NewDecoder(bytes.NewBuffer(data))

	var version int
	if err := decoder.Decode(&version); err != nil {
		return err
	}
	if err := checkGobVersion(version); err != nil {
		return err
	}

	if err := decoder.Decode(&sg.cellSize); err != nil {
		return err
	}

	var slots []shapeSlotGob[O]
	if err := decoder.Decode(&slots); err != nil {
		return err
	}

	var free []uint32
	if err := decoder.Decode(&free); err != nil {
		return err
	}

	sg.table = NewHandleTable[shapeObject[O]]()
	sg.cells = NewCellIndex[Handle]()
	sg.table.slots = make([]tableSlot[shapeObject[O]], len(slots))
	for i, s := range slots {
		ts := &sg.table.slots[i]
		ts.gen = s.Gen
		ts.live = s.Live
		if !s.Live {
			continue
		}
		ts.val = shapeObject[O]{shape: s.Shape, obj: s.Obj}
		h := Handle{slot: uint32(i), gen: s.Gen}
		ts.val.occupied = sg.occupy(h, s.Shape, nil)
		sg.table.live++
	}
	sg.table.free = slotHeap(free)
	heap.Init(&sg.table.free)

	sg.opts.ensure()
	return nil
}
