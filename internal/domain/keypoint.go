package domain

import (
	"bytes"
	"encoding/binary"
	"math/bits"

	"github.com/DRSN-tech/match-engine/pkg/e"
)

// DescriptorSize — размер бинарного дескриптора ключевой точки (ORB, 256 бит).
const DescriptorSize = 32

// Keypoint — ключевая точка изображения: пиксельные координаты и локальный дескриптор.
type Keypoint struct {
	X          float64
	Y          float64
	Descriptor [DescriptorSize]byte
}

// HammingDistance возвращает расстояние Хэмминга между дескрипторами двух точек.
func (k *Keypoint) HammingDistance(other *Keypoint) int {
	dist := 0
	for i := 0; i < DescriptorSize; i++ {
		dist += bits.OnesCount8(k.Descriptor[i] ^ other.Descriptor[i])
	}
	return dist
}

// EdgeMap — бинарная карта границ изображения, упакованная по битам построчно.
type EdgeMap struct {
	Width  int
	Height int
	Bits   []byte
}

func NewEdgeMap(width, height int) *EdgeMap {
	return &EdgeMap{
		Width:  width,
		Height: height,
		Bits:   make([]byte, (width*height+7)/8),
	}
}

// At сообщает, является ли пиксель (x, y) граничным. Вне карты — false.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	idx := y*m.Width + x
	return m.Bits[idx/8]&(1<<(idx%8)) != 0
}

// Set помечает пиксель (x, y) как граничный.
func (m *EdgeMap) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	idx := y*m.Width + x
	m.Bits[idx/8] |= 1 << (idx % 8)
}

// KeypointSet — упорядоченный набор ключевых точек одного изображения вместе
// с его картой границ. Хранится как непрозрачный блоб, адресуемый ключом объекта.
type KeypointSet struct {
	Keypoints []Keypoint
	Edges     *EdgeMap
}

// kpsMagic — сигнатура формата блоба ключевых точек.
var kpsMagic = [4]byte{'K', 'P', 'S', '1'}

// maxEdgeMapDim — верхняя граница стороны карты границ в блобе.
const maxEdgeMapDim = 1 << 16

// Encode сериализует набор в бинарный блоб.
// Формат: magic | uint32 count | count * (float64 x, float64 y, 32 байта дескриптора)
// | uint32 width | uint32 height | биты карты границ.
func (s *KeypointSet) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(kpsMagic[:])

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(s.Keypoints))); err != nil {
		return nil, err
	}
	for i := range s.Keypoints {
		kp := &s.Keypoints[i]
		if err := binary.Write(buf, binary.LittleEndian, kp.X); err != nil {
			return nil, err
		}
		if err := binary.Write(buf, binary.LittleEndian, kp.Y); err != nil {
			return nil, err
		}
		buf.Write(kp.Descriptor[:])
	}

	edges := s.Edges
	if edges == nil {
		edges = NewEdgeMap(0, 0)
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(edges.Width)); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, uint32(edges.Height)); err != nil {
		return nil, err
	}
	buf.Write(edges.Bits)

	return buf.Bytes(), nil
}

// DecodeKeypointSet разбирает бинарный блоб набора ключевых точек.
// Любое повреждение формата возвращает e.ErrCorruptKeypointBlob.
func DecodeKeypointSet(data []byte) (*KeypointSet, error) {
	r := bytes.NewReader(data)

	var magic [4]byte
	if _, err := r.Read(magic[:]); err != nil || magic != kpsMagic {
		return nil, e.ErrCorruptKeypointBlob
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, e.ErrCorruptKeypointBlob
	}

	// Защита от мусорных значений count: в блобе должно хватать байт на все точки.
	const kpRecordSize = 8 + 8 + DescriptorSize
	if int64(count)*kpRecordSize > int64(r.Len()) {
		return nil, e.ErrCorruptKeypointBlob
	}

	set := &KeypointSet{Keypoints: make([]Keypoint, count)}
	for i := range set.Keypoints {
		kp := &set.Keypoints[i]
		if err := binary.Read(r, binary.LittleEndian, &kp.X); err != nil {
			return nil, e.ErrCorruptKeypointBlob
		}
		if err := binary.Read(r, binary.LittleEndian, &kp.Y); err != nil {
			return nil, e.ErrCorruptKeypointBlob
		}
		if _, err := r.Read(kp.Descriptor[:]); err != nil {
			return nil, e.ErrCorruptKeypointBlob
		}
	}

	var w, h uint32
	if err := binary.Read(r, binary.LittleEndian, &w); err != nil {
		return nil, e.ErrCorruptKeypointBlob
	}
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, e.ErrCorruptKeypointBlob
	}

	// Мусорные размеры карты границ переполняют произведение ниже.
	if w > maxEdgeMapDim || h > maxEdgeMapDim {
		return nil, e.ErrCorruptKeypointBlob
	}

	edges := &EdgeMap{Width: int(w), Height: int(h)}
	want := (int(w)*int(h) + 7) / 8
	if r.Len() < want {
		return nil, e.ErrCorruptKeypointBlob
	}
	edges.Bits = make([]byte, want)
	if want > 0 {
		if _, err := r.Read(edges.Bits); err != nil {
			return nil, e.ErrCorruptKeypointBlob
		}
	}
	set.Edges = edges

	return set, nil
}
