package namegen

import "fmt"

const (
	namingSystemPrompt      = "You are a helpful naming assistant."
	translationSystemPrompt = "You are a professional translator."

	// Example pool the model picks surnames from: common single-character
	// surnames plus the known two-character compounds.
	surnamePool = "李、王、张、刘、陈、杨、赵、黄、周、吴、徐、孙、朱、马、胡、郭、何、高、罗、郑、宋、谢、唐、曹、许、邹、魏、陶、姜、程、邓、韩、叶、梁、潘、金、钟、戴、任、袁、于、陆、石、洪、姚、邱、白、冯、彭、范、苏、杜、丁、贾、沈、田、侯、夏、方、熊、邵、曾、孟、秦、段、雷、霍、龚、卫、顾、蒲、欧阳、司马、上官、诸葛、东方、夏侯、尉迟、独孤、令狐、长孙、宇文、赫连、拓跋"
)

// primaryPrompt builds the full-constraint instruction: strict JSON-array-only
// output, per-field schema, name composition rule, surname diversity, the
// historical-figure exact-match ban and the pronounce_hint prohibition.
func primaryPrompt(targetLang string, prefsJSON []byte) string {
	return "根据用户偏好生成中文名字，严格返回 JSON 数组，每项包含：" +
		"name(中文全名，必须包含姓；姓1-2字，名1-2字，总长2-4)、" +
		"pinyin(含姓氏的带声调拼音)、style、meaning、" +
		"nameInsight(2-3句解读与寓意)、" +
		"surnameInfo:{origin, meaning, story[50-150字的叙述，至少包含1位与该姓相关人物的最著名事迹]、figures[可选，1-2条人物简介]}。" +
		"禁止返回发音提示，不得包含 pronounce_hint 字段。" +
		"姓氏选择：从百家姓中随机选择并保持多样性，示例：" + surnamePool + "。" +
		"不得与历史或政治人物的名字完全一致（可同姓，不得姓名完全一致）。" +
		"多个候选的姓氏重复率需低于20%。" +
		fmt.Sprintf("除 name 与 pinyin 外，其余文本字段请使用 %s 语言自然表达，准确可读。", targetLang) +
		"只返回纯JSON数组，不要任何说明文字或代码块。" +
		"输入偏好：" + string(prefsJSON)
}

// safePrompt is the reduced-constraint retry: fewer rules and a smaller
// schema to maximize the chance of a minimally valid response.
func safePrompt(prefsJSON []byte) string {
	return "请生成合规的中文名字，严格返回 JSON 数组，每项包含：" +
		"name(中文全名，必须含姓；姓1-2字，名1-2字，总长2-4)、" +
		"pinyin(含姓氏拼音)、style、meaning、nameInsight、" +
		"surnameInfo:{origin, meaning, story[50-150字，必须包含1位人物的最著名事迹]、figures[可选] }。" +
		"只返回纯JSON，避免敏感内容。" +
		"输入偏好：" + string(prefsJSON)
}

// translationPrompt asks for a field-by-field translation that leaves name
// and pinyin untouched and the structure intact.
func translationPrompt(targetLang string, recordsJSON []byte) string {
	return "Translate the following JSON into " + targetLang + ". " +
		"Preserve fields 'name' and 'pinyin' as original. " +
		"Translate textual fields: 'style', 'meaning', 'nameInsight', 'surnameInfo.origin', 'surnameInfo.meaning', 'surnameInfo.story'. " +
		"Keep structure unchanged and natural, accurate, readable, not machine-like. " +
		"Return pure JSON only. Input: " + string(recordsJSON)
}
