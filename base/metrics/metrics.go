/*Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Counter: *.count
*/
package metrics

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/x-xyz/artgallery/base/env"
	"github.com/x-xyz/artgallery/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// New creates a metric client with package name as prefix
func New(pkgName string) Service {
	return &Metrics{
		pkgName: pkgName,
		datadog: DDMetrics{
			ddTags: []string{
				// using host removes all tags associated with host
				// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
				"host:",
				"pod:" + env.PodName(),
				"env:" + viper.GetString("env_name"),
				"app:" + viper.GetString("app_name"),
			},
		},
	}
}

// Metrics prefixes every key with its package name and never lets a
// metrics failure escape to the caller.
type Metrics struct {
	pkgName string
	datadog DDMetrics
}

func (mt *Metrics) recoverBump(fn, key string, tags []string) {
	if err := recover(); err != nil {
		log.Log().WithFields(log.Fields{
			"err":  err,
			"func": fn,
			"key":  mt.pkgName + `.` + key + "#" + strings.Join(tags, "#"),
		}).Error("metrics panic")
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpAvg", key, tags)
	mt.datadog.BumpAvg(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpSum", key, tags)
	mt.datadog.BumpSum(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverBump("BumpHistogram", key, tags)
	mt.datadog.BumpHistogram(mt.pkgName+`.`+key, val, 1, tags...)
}

// BumpTime starts a timer, End() on the returned value records it:
//
//     defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	defer mt.recoverBump("BumpTime", key, tags)
	return mt.datadog.BumpTime(mt.pkgName+`.`+key, 1, tags...)
}
