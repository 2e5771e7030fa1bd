package domain

// Color 笔记颜色标签
type Color string

const (
	ColorDefault Color = "default"
	ColorRed     Color = "red"
	ColorOrange  Color = "orange"
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorTeal    Color = "teal"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorPink    Color = "pink"
	ColorGray    Color = "gray"
)

// ColorInfo 调色板条目，样式类名供 Web 客户端直接使用
type ColorInfo struct {
	ID              Color  `json:"id"`
	Name            string `json:"name"`
	BgClass         string `json:"bgClass"`
	DarkBgClass     string `json:"darkBgClass"`
	BorderClass     string `json:"borderClass"`
	DarkBorderClass string `json:"darkBorderClass"`
}

// NoteColors 固定的 10 色调色板，第一项为缺省色
var NoteColors = []ColorInfo{
	{ID: ColorDefault, Name: "Default", BgClass: "bg-white", DarkBgClass: "dark:bg-gray-800", BorderClass: "border-gray-200", DarkBorderClass: "dark:border-gray-700"},
	{ID: ColorRed, Name: "Red", BgClass: "bg-red-50", DarkBgClass: "dark:bg-red-900/30", BorderClass: "border-red-200", DarkBorderClass: "dark:border-red-800/50"},
	{ID: ColorOrange, Name: "Orange", BgClass: "bg-orange-50", DarkBgClass: "dark:bg-orange-900/30", BorderClass: "border-orange-200", DarkBorderClass: "dark:border-orange-800/50"},
	{ID: ColorYellow, Name: "Yellow", BgClass: "bg-amber-50", DarkBgClass: "dark:bg-amber-900/30", BorderClass: "border-amber-200", DarkBorderClass: "dark:border-amber-800/50"},
	{ID: ColorGreen, Name: "Green", BgClass: "bg-green-50", DarkBgClass: "dark:bg-green-900/30", BorderClass: "border-green-200", DarkBorderClass: "dark:border-green-800/50"},
	{ID: ColorTeal, Name: "Teal", BgClass: "bg-teal-50", DarkBgClass: "dark:bg-teal-900/30", BorderClass: "border-teal-200", DarkBorderClass: "dark:border-teal-800/50"},
	{ID: ColorBlue, Name: "Blue", BgClass: "bg-blue-50", DarkBgClass: "dark:bg-blue-900/30", BorderClass: "border-blue-200", DarkBorderClass: "dark:border-blue-800/50"},
	{ID: ColorPurple, Name: "Purple", BgClass: "bg-purple-50", DarkBgClass: "dark:bg-purple-900/30", BorderClass: "border-purple-200", DarkBorderClass: "dark:border-purple-800/50"},
	{ID: ColorPink, Name: "Pink", BgClass: "bg-pink-50", DarkBgClass: "dark:bg-pink-900/30", BorderClass: "border-pink-200", DarkBorderClass: "dark:border-pink-800/50"},
	{ID: ColorGray, Name: "Gray", BgClass: "bg-gray-50", DarkBgClass: "dark:bg-gray-900/50", BorderClass: "border-gray-200", DarkBorderClass: "dark:border-gray-700/70"},
}

// GetColorInfo 根据颜色标识返回调色板条目，未知或空值回退到缺省色
func GetColorInfo(id Color) ColorInfo {
	for _, c := range NoteColors {
		if c.ID == id {
			return c
		}
	}
	return NoteColors[0]
}

// IsValidColor 判断颜色标识是否在调色板内
func IsValidColor(id Color) bool {
	for _, c := range NoteColors {
		if c.ID == id {
			return true
		}
	}
	return false
}
