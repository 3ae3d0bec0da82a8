package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseResult 智能记账解析结果
//
// 解析永远成功：缺失的字段以零值/空值呈现并降低置信度，
// 是否采纳由调用方决定。
type ParseResult struct {
	Amount       *float64  `json:"amount"`                  // 金额，未识别时为 null
	CategoryName string    `json:"category_name,omitempty"` // 类别猜测，未命中为空
	IsExpense    bool      `json:"is_expense"`              // 默认支出
	Date         time.Time `json:"date"`                    // 解析出的记账日期
	Note         string    `json:"note"`                    // 去掉金额和日期词后的剩余文本
	Confidence   int       `json:"confidence"`              // 置信度 0-100
}

// IsValid 解析结果是否可直接用于建记录：仅取决于金额
func (r *ParseResult) IsValid() bool {
	return r.Amount != nil && *r.Amount > 0
}

// CategoryKeywords 一个类别及其触发词，表内次序即匹配优先级
type CategoryKeywords struct {
	Name     string
	Keywords []string
}

// DateKeyword 相对日期关键词及其天数偏移
type DateKeyword struct {
	Word   string
	Offset int
}

// Vocabulary 解析词表
//
// 以不可变配置的形式在构造解析器时传入，便于用替换词表（其他语种）
// 测试。各列表的次序是行为契约：靠前的类别在歧义文本上优先胜出
// （如"红包"同时出现在收入指示词和类别词表中）。
type Vocabulary struct {
	ExpenseCategories []CategoryKeywords
	IncomeCategories  []CategoryKeywords
	IncomeIndicators  []string
	DateKeywords      []DateKeyword
}

// DefaultVocabulary 内置中文词表
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ExpenseCategories: []CategoryKeywords{
			{"餐饮", []string{"吃", "早饭", "午饭", "晚饭", "早餐", "午餐", "晚餐", "饭", "餐", "食", "外卖", "美团", "饿了么", "奶茶", "咖啡", "饮料", "零食", "水果", "蔬菜", "肉", "菜", "面", "粉", "粥", "火锅", "烧烤", "小吃", "甜点", "蛋糕"}},
			{"交通", []string{"打车", "滴滴", "出租", "地铁", "公交", "车费", "油费", "加油", "高铁", "火车", "飞机", "机票", "停车", "过路费", "骑车", "单车", "共享"}},
			{"购物", []string{"买", "购", "淘宝", "京东", "拼多多", "商场", "超市", "日用", "衣服", "鞋", "包", "化妆品", "护肤", "家电", "数码", "手机", "电脑"}},
			{"娱乐", []string{"电影", "游戏", "KTV", "唱歌", "旅游", "玩", "门票", "景点", "演唱会", "运动", "健身", "游泳", "球"}},
			{"居住", []string{"房租", "水费", "电费", "燃气", "物业", "维修", "装修", "家具"}},
			{"通讯", []string{"话费", "流量", "充值", "网费", "宽带"}},
			{"医疗", []string{"医院", "药", "看病", "挂号", "体检", "牙", "眼镜"}},
			{"教育", []string{"学费", "培训", "课程", "书", "教材", "考试", "学习"}},
			{"人情", []string{"红包", "礼物", "送礼", "份子钱", "请客", "聚餐", "随礼"}},
		},
		IncomeCategories: []CategoryKeywords{
			{"工资", []string{"工资", "薪资", "薪水", "月薪", "底薪", "发工资"}},
			{"奖金", []string{"奖金", "年终奖", "绩效", "提成", "分红"}},
			{"投资", []string{"股票", "基金", "理财", "利息", "收益", "投资"}},
			{"兼职", []string{"兼职", "副业", "外快", "私活"}},
			{"红包", []string{"红包", "收红包", "压岁钱", "转账"}},
		},
		IncomeIndicators: []string{"收入", "收到", "进账", "入账", "发", "工资", "奖金", "红包", "赚"},
		DateKeywords: []DateKeyword{
			{"今天", 0},
			{"今日", 0},
			{"昨天", -1},
			{"昨日", -1},
			{"前天", -2},
			{"前日", -2},
			{"大前天", -3},
		},
	}
}

// 金额提取正则，按优先级排列。amountGroup 为金额所在的分组号。
type amountPattern struct {
	re          *regexp.Regexp
	amountGroup int
}

var (
	arabicPatterns = []amountPattern{
		{regexp.MustCompile(`(\d+\.?\d*)\s*(块|元|¥|￥|圆|RMB|rmb)`), 1}, // 数字+货币单位
		{regexp.MustCompile(`(¥|￥)\s*(\d+\.?\d*)`), 2},               // 货币符号+数字
		{regexp.MustCompile(`(\d+\.?\d*)\s*(块钱|元钱)`), 1},             // 数字+复合货币词
	}
	chineseNumeralRe = regexp.MustCompile(`[零一二三四五六七八九十百千万]+`)
	bareNumberRe     = regexp.MustCompile(`\d+\.?\d*`)
	// 备注清理：数字+可选货币单位
	noteAmountRe     = regexp.MustCompile(`\d+\.?\d*\s*(块钱?|元钱?|¥|￥|圆|RMB|rmb)?`)
	noteWhitespaceRe = regexp.MustCompile(`\s+`)
)

// Parser 智能记账解析器
//
// 从一句自然语言中尽力提取记账信息。各阶段相互独立，任一阶段
// 落空只会得到空值，不会失败。
type Parser struct {
	vocab Vocabulary
	now   func() time.Time
}

// NewParser 用指定词表创建解析器
func NewParser(vocab Vocabulary) *Parser {
	return &Parser{vocab: vocab, now: time.Now}
}

// NewParserWithClock 创建使用指定时钟的解析器，用于测试
func NewParserWithClock(vocab Vocabulary, now func() time.Time) *Parser {
	return &Parser{vocab: vocab, now: now}
}

// Parse 解析输入文本
//
// 依次执行：收支判断 → 金额提取 → 类别识别 → 日期解析 → 备注生成 →
// 置信度计算。相同输入总是得到相同结果（时钟固定时）。
func (p *Parser) Parse(input string) ParseResult {
	text := strings.TrimSpace(input)
	if text == "" {
		return ParseResult{IsExpense: true, Date: p.now()}
	}

	isExpense := !p.containsIncomeIndicator(text)
	amount := p.extractAmount(text)
	categoryName := p.extractCategory(text, isExpense)

	result := ParseResult{
		Amount:       amount,
		CategoryName: categoryName,
		IsExpense:    isExpense,
		Date:         p.extractDate(text),
		Note:         p.generateNote(text),
	}
	if result.Amount != nil && *result.Amount > 0 {
		result.Confidence += 50
	}
	if result.CategoryName != "" {
		result.Confidence += 50
	}
	return result
}

// Examples 示例输入
func (p *Parser) Examples() []string {
	return []string{
		"今天早上吃了20块的早餐",
		"打车花了35元",
		"淘宝买衣服花了299",
		"收到工资8000元",
		"昨天请客吃饭花了三百块",
	}
}

// containsIncomeIndicator 文本是否含收入指示词（子串包含，不做归一化）
func (p *Parser) containsIncomeIndicator(text string) bool {
	for _, word := range p.vocab.IncomeIndicators {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// extractAmount 提取金额
//
// 优先级：阿拉伯数字+单位的三种形式 → 中文数字 → 任意裸数字兜底，
// 命中即止。没有货币单位时裸数字兜底可能取到无关数字，这是既有
// 契约的一部分，由置信度和调用方确认兜底。
func (p *Parser) extractAmount(text string) *float64 {
	for _, pat := range arabicPatterns {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, err := strconv.ParseFloat(m[pat.amountGroup], 64); err == nil {
			return &v
		}
	}

	if m := chineseNumeralRe.FindString(text); m != "" {
		if v, ok := chineseToNumber(m); ok {
			return &v
		}
	}

	if m := bareNumberRe.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return &v
		}
	}

	return nil
}

// chineseToNumber 中文数字转数值，按位值累加
//
// 从左到右累积当前数字，遇到位值字符时乘以位值并入结果；"十"前
// 缺数字时按 1 处理；"万"作用于已累积的全部结果。结果为 0 时视为
// 未识别。
func chineseToNumber(s string) (float64, bool) {
	digits := map[rune]float64{
		'零': 0, '一': 1, '二': 2, '三': 3, '四': 4,
		'五': 5, '六': 6, '七': 7, '八': 8, '九': 9,
		'两': 2,
	}
	units := map[rune]float64{'十': 10, '百': 100, '千': 1000, '万': 10000}

	var result, pending float64
	for _, ch := range s {
		if d, ok := digits[ch]; ok {
			pending = d
			continue
		}
		u, ok := units[ch]
		if !ok {
			continue
		}
		if pending == 0 && ch == '十' {
			pending = 1
		}
		if ch == '万' {
			result = (result + pending) * u
		} else {
			result += pending * u
		}
		pending = 0
	}
	result += pending

	if result <= 0 {
		return 0, false
	}
	return result, true
}

// extractCategory 按词表顺序识别类别，首个命中者胜出
func (p *Parser) extractCategory(text string, isExpense bool) string {
	table := p.vocab.IncomeCategories
	if isExpense {
		table = p.vocab.ExpenseCategories
	}
	for _, cat := range table {
		for _, keyword := range cat.Keywords {
			if strings.Contains(text, keyword) {
				return cat.Name
			}
		}
	}
	return ""
}

// extractDate 解析相对日期，只应用首个命中的关键词；无命中时取当前时间
func (p *Parser) extractDate(text string) time.Time {
	now := p.now()
	for _, kw := range p.vocab.DateKeywords {
		if strings.Contains(text, kw.Word) {
			return now.AddDate(0, 0, kw.Offset)
		}
	}
	return now
}

// generateNote 生成备注：去掉金额和日期关键词，压缩空白，截断到 50 字
func (p *Parser) generateNote(text string) string {
	note := noteAmountRe.ReplaceAllString(text, "")
	for _, kw := range p.vocab.DateKeywords {
		note = strings.ReplaceAll(note, kw.Word, "")
	}
	note = strings.TrimSpace(noteWhitespaceRe.ReplaceAllString(note, " "))

	if runes := []rune(note); len(runes) > 50 {
		return string(runes[:50])
	}
	return note
}
