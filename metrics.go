package listenerlist

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports listener counts of watched Lists as Prometheus gauges.
// Counts are read from snapshots at scrape time, so collection never waits
// on Add or Remove.
//
// Series are labelled by category name. Distinct categories that share a
// name within one List, such as two NewCategory[T]() tokens for the same T,
// are reported as a single series holding their summed count.
type Collector struct {
	desc  *prometheus.Desc
	lists map[string]*List
	lock  sync.RWMutex
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a Collector exporting <namespace>_listeners.
func NewCollector(namespace string) *Collector {
	return &Collector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "listeners"),
			"Number of listeners registered per category.",
			[]string{"list", "category"},
			nil,
		),
		lists: make(map[string]*List),
	}
}

// Watch exports l under the given list label, replacing any List watched
// under the same name.
func (c *Collector) Watch(name string, l *List) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.lists[name] = l
}

func (c *Collector) Forget(name string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.lists, name)
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	for name, l := range c.lists {
		counts := make(map[string]int)
		for _, e := range l.Snapshot() {
			counts[e.Category.Name()]++
		}
		for category, n := range counts {
			ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n), name, category)
		}
	}
}
