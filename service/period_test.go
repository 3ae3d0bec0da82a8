package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriod_Month(t *testing.T) {
	p := ResolvePeriod(RangeMonth, 2024, time.January)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), p.Start)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.Local), p.End)
	// 31 天 → 5 个周桶
	assert.Equal(t, 5, p.BucketCount)

	// 2 月（闰年 29 天）→ 5 个周桶；平年 28 天 → 4 个
	assert.Equal(t, 5, ResolvePeriod(RangeMonth, 2024, time.February).BucketCount)
	assert.Equal(t, 4, ResolvePeriod(RangeMonth, 2023, time.February).BucketCount)
}

func TestResolvePeriod_Year(t *testing.T) {
	p := ResolvePeriod(RangeYear, 2024, time.June)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), p.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, int(999*time.Millisecond), time.Local), p.End)
	assert.Equal(t, 12, p.BucketCount)
}

func TestResolvePeriod_All(t *testing.T) {
	p := ResolvePeriod(RangeAll, 2024, time.June)

	assert.Equal(t, time.Unix(0, 0), p.Start)
	assert.True(t, p.End.After(time.Now().AddDate(100, 0, 0)))
	assert.Equal(t, 0, p.BucketCount)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.January))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2023, time.February))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
}

func TestCanGoNext(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)

	// 月视图：过去可以前进，当月和未来不行
	assert.True(t, CanGoNext(RangeMonth, 2024, time.May, now))
	assert.True(t, CanGoNext(RangeMonth, 2023, time.December, now))
	assert.False(t, CanGoNext(RangeMonth, 2024, time.June, now))
	assert.False(t, CanGoNext(RangeMonth, 2024, time.July, now))

	// 年视图
	assert.True(t, CanGoNext(RangeYear, 2023, time.January, now))
	assert.False(t, CanGoNext(RangeYear, 2024, time.January, now))

	// 全部视图不支持切换
	assert.False(t, CanGoNext(RangeAll, 2020, time.January, now))
}

func TestNextAnchor(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.Local)

	// 正常前进
	y, m, moved := NextAnchor(RangeMonth, 2024, time.April, now)
	assert.True(t, moved)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.May, m)

	// 跨年
	y, m, moved = NextAnchor(RangeMonth, 2023, time.December, now)
	assert.True(t, moved)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.January, m)

	// 已到当月，不前进
	y, m, moved = NextAnchor(RangeMonth, 2024, time.June, now)
	assert.False(t, moved)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.June, m)

	// 年视图
	y, _, moved = NextAnchor(RangeYear, 2023, time.June, now)
	assert.True(t, moved)
	assert.Equal(t, 2024, y)

	_, _, moved = NextAnchor(RangeYear, 2024, time.June, now)
	assert.False(t, moved)
}

func TestPreviousAnchor(t *testing.T) {
	// 正常后退
	y, m := PreviousAnchor(RangeMonth, 2024, time.June)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.May, m)

	// 跨年
	y, m = PreviousAnchor(RangeMonth, 2024, time.January)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	// 无下界限制
	y, _ = PreviousAnchor(RangeYear, 1970, time.January)
	assert.Equal(t, 1969, y)

	// 全部视图原样返回
	y, m = PreviousAnchor(RangeAll, 2024, time.June)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.June, m)
}
