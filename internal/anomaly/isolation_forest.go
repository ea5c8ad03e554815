package anomaly

import (
	"math"
	"math/rand"
	"sort"
)

const eulerGamma = 0.5772156649015329

// IsolationForest - ансамбль случайных разбиений одномерного пространства.
// Точки, которые изолируются за меньшее число разбиений, считаются более аномальными.
type IsolationForest struct {
	Trees         int     // количество деревьев
	MaxSamples    int     // размер подвыборки на дерево
	Contamination float64 // ожидаемая доля выбросов
	Seed          int64

	roots      []*isolationNode
	sampleSize int
	threshold  float64
}

type isolationNode struct {
	split       float64
	left, right *isolationNode
	size        int // количество точек в листе
}

// NewIsolationForest создает модель с параметрами по умолчанию
func NewIsolationForest(contamination float64, seed int64) *IsolationForest {
	return &IsolationForest{
		Trees:         100,
		MaxSamples:    256,
		Contamination: contamination,
		Seed:          seed,
	}
}

// Fit строит деревья по значениям и вычисляет порог выброса по обучающей выборке
func (f *IsolationForest) Fit(values []float64) {
	f.roots = nil
	f.sampleSize = 0
	f.threshold = math.Inf(1)
	if len(values) == 0 {
		return
	}

	rng := rand.New(rand.NewSource(f.Seed))

	f.sampleSize = len(values)
	if f.MaxSamples > 0 && f.sampleSize > f.MaxSamples {
		f.sampleSize = f.MaxSamples
	}
	heightLimit := int(math.Ceil(math.Log2(math.Max(float64(f.sampleSize), 2))))

	f.roots = make([]*isolationNode, 0, f.Trees)
	for i := 0; i < f.Trees; i++ {
		perm := rng.Perm(len(values))
		sample := make([]float64, f.sampleSize)
		for j := 0; j < f.sampleSize; j++ {
			sample[j] = values[perm[j]]
		}
		f.roots = append(f.roots, buildNode(sample, 0, heightLimit, rng))
	}

	scores := make([]float64, len(values))
	for i, v := range values {
		scores[i] = f.Score(v)
	}
	f.threshold = quantile(scores, 1-f.Contamination)
}

// Score возвращает оценку аномальности в диапазоне (0, 1]; больше - аномальнее
func (f *IsolationForest) Score(value float64) float64 {
	if len(f.roots) == 0 {
		return 0
	}
	var total float64
	for _, root := range f.roots {
		total += pathLength(root, value, 0)
	}
	mean := total / float64(len(f.roots))
	norm := averagePathLength(f.sampleSize)
	if norm == 0 {
		return 0.5
	}
	return math.Pow(2, -mean/norm)
}

// Predict обучает модель на values и возвращает признак выброса для каждого значения
func (f *IsolationForest) Predict(values []float64) []bool {
	f.Fit(values)
	result := make([]bool, len(values))
	for i, v := range values {
		result[i] = f.Score(v) > f.threshold
	}
	return result
}

func buildNode(points []float64, depth, heightLimit int, rng *rand.Rand) *isolationNode {
	if depth >= heightLimit || len(points) <= 1 {
		return &isolationNode{size: len(points)}
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	// Одинаковые значения разделить нельзя
	if lo == hi {
		return &isolationNode{size: len(points)}
	}

	split := lo + rng.Float64()*(hi-lo)
	var left, right []float64
	for _, p := range points {
		if p < split {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	return &isolationNode{
		split: split,
		left:  buildNode(left, depth+1, heightLimit, rng),
		right: buildNode(right, depth+1, heightLimit, rng),
	}
}

func pathLength(node *isolationNode, value float64, depth int) float64 {
	if node.left == nil && node.right == nil {
		return float64(depth) + averagePathLength(node.size)
	}
	if value < node.split {
		return pathLength(node.left, value, depth+1)
	}
	return pathLength(node.right, value, depth+1)
}

// averagePathLength - средняя длина пути неуспешного поиска в BST из n элементов
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

// quantile - квантиль с линейной интерполяцией между соседними значениями
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower < 0 {
		return sorted[0]
	}
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lower] + (pos-float64(lower))*(sorted[upper]-sorted[lower])
}
