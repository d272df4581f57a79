package icon

// Icon identifies a UI symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Mark
	Play
	Pause
	Buffering
	Volume
	Muted
	Lock
	Owned
	Resume
	Completed
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(◕‿◕)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "😵",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・)ノ",
		squares: "🟦",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・ )?",
		squares: "🟪",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "",
		plain:   "*",
		kaomoji: "(＾▽＾)",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟩",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "🟧",
	},
	Buffering: {
		emoji:   "🌀",
		nerd:    "",
		plain:   "~",
		kaomoji: "(@_@)",
		squares: "🟦",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "(°o°)",
		squares: "🟫",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(－‸ლ)",
		squares: "⬛",
	},
	Lock: {
		emoji:   "🔒",
		nerd:    "",
		plain:   "$",
		kaomoji: "(¬_¬)",
		squares: "⬜",
	},
	Owned: {
		emoji:   "🎓",
		nerd:    "",
		plain:   "+",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Resume: {
		emoji:   "⏩",
		nerd:    "",
		plain:   ">>",
		kaomoji: "ε=ε=(ノ≧∇≦)ノ",
		squares: "🟦",
	},
	Completed: {
		emoji:   "🏁",
		nerd:    "",
		plain:   "done",
		kaomoji: "ヽ(´▽`)/",
		squares: "🟩",
	},
}
