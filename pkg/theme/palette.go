package theme

// Palette holds the semantic colour roles shared by the stylesheets and the
// terminal renderer. Field order matches the CSS variables it renders to.
type Palette struct {
	PrimaryDark        string // --color-primary-dark, page background
	Primary            string // --color-primary, accent and selection
	TertiaryDark       string // --color-tertiary-dark, raised panels
	Card               string // --color-card
	CardBorder         string // --color-card-border
	HoverButton        string // --color-hover-button, focus and buttons
	Label              string // --color-label
	LabelPrimary       string // --color-label-primary
	LabelSecondary     string // --color-label-secondary
	LabelBold          string // --color-label-bold
	GradientBackground string // --gradient-background
}

var palettes = map[Kind]Palette{
	Unghosty: {
		PrimaryDark: "#0f1115", Primary: "#7c9cff", TertiaryDark: "#1a1d24",
		Card: "#171a21", CardBorder: "#2a2f3a", HoverButton: "#5b7cfa",
		Label: "#c9d1e0", LabelPrimary: "#e6eaf2", LabelSecondary: "#98a2b3", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #0f1115 0%, #1a1d24 100%)",
	},
	Burgundy: {
		PrimaryDark: "#1a0a0f", Primary: "#c2415f", TertiaryDark: "#2a1017",
		Card: "#24101a", CardBorder: "#4a1f2c", HoverButton: "#9e2a45",
		Label: "#e8c9d1", LabelPrimary: "#f5e6ea", LabelSecondary: "#b8919c", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #1a0a0f 0%, #3b1320 100%)",
	},
	Gold: {
		PrimaryDark: "#15120a", Primary: "#e0b341", TertiaryDark: "#221c0f",
		Card: "#1e1910", CardBorder: "#4a3d1c", HoverButton: "#c99a2e",
		Label: "#eadcb5", LabelPrimary: "#f7efd9", LabelSecondary: "#b3a57f", LabelBold: "#fff8e1",
		GradientBackground: "linear-gradient(135deg, #15120a 0%, #2e2512 100%)",
	},
	PurplePink: {
		PrimaryDark: "#150d1f", Primary: "#e36bc4", TertiaryDark: "#22142f",
		Card: "#1d1229", CardBorder: "#3f2757", HoverButton: "#a855f7",
		Label: "#e2cdf0", LabelPrimary: "#f4e8fb", LabelSecondary: "#a990bf", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #2a1145 0%, #5c1a4f 100%)",
	},
	Monochrome: {
		PrimaryDark: "#0a0a0a", Primary: "#d4d4d4", TertiaryDark: "#171717",
		Card: "#141414", CardBorder: "#333333", HoverButton: "#a3a3a3",
		Label: "#d4d4d4", LabelPrimary: "#f5f5f5", LabelSecondary: "#8a8a8a", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #0a0a0a 0%, #1f1f1f 100%)",
	},
	Watermelon: {
		PrimaryDark: "#0e1a12", Primary: "#ff5c7a", TertiaryDark: "#15261b",
		Card: "#132219", CardBorder: "#2c4a36", HoverButton: "#3fbf6f",
		Label: "#d5ecd9", LabelPrimary: "#eefaf0", LabelSecondary: "#93b39b", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #0e1a12 0%, #3a1520 100%)",
	},
	Sunset: {
		PrimaryDark: "#1a0f14", Primary: "#ff8a4c", TertiaryDark: "#2a1720",
		Card: "#24131b", CardBorder: "#4d2836", HoverButton: "#f0576b",
		Label: "#f2d6cc", LabelPrimary: "#fdeee6", LabelSecondary: "#bf9a90", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #3d1a2e 0%, #a3452e 100%)",
	},
	Ocean: {
		PrimaryDark: "#07141f", Primary: "#38bdf8", TertiaryDark: "#0c2030",
		Card: "#0b1b29", CardBorder: "#1d3a52", HoverButton: "#0ea5e9",
		Label: "#cfe6f5", LabelPrimary: "#e8f5fd", LabelSecondary: "#8aa9bf", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #07141f 0%, #0c3350 100%)",
	},
	Spacetime: {
		PrimaryDark: "#05040d", Primary: "#8b7cf6", TertiaryDark: "#0e0b1f",
		Card: "#0b0918", CardBorder: "#251f47", HoverButton: "#6d5dfc",
		Label: "#d4d0f5", LabelPrimary: "#ecebff", LabelSecondary: "#8f8ab8", LabelBold: "#ffffff",
		GradientBackground: "radial-gradient(circle at 30% 20%, #1b1440 0%, #05040d 70%)",
	},
	Gruvbox: {
		PrimaryDark: "#282828", Primary: "#fabd2f", TertiaryDark: "#32302f",
		Card: "#3c3836", CardBorder: "#504945", HoverButton: "#d79921",
		Label: "#ebdbb2", LabelPrimary: "#fbf1c7", LabelSecondary: "#a89984", LabelBold: "#fbf1c7",
		GradientBackground: "linear-gradient(135deg, #282828 0%, #3c3836 100%)",
	},
	Monokai: {
		PrimaryDark: "#272822", Primary: "#a6e22e", TertiaryDark: "#2f302a",
		Card: "#3e3d32", CardBorder: "#49483e", HoverButton: "#f92672",
		Label: "#f8f8f2", LabelPrimary: "#f8f8f2", LabelSecondary: "#90908a", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #272822 0%, #3e3d32 100%)",
	},
	Hellas: {
		PrimaryDark: "#0a1a33", Primary: "#4f8fe6", TertiaryDark: "#10264a",
		Card: "#0f2242", CardBorder: "#24467a", HoverButton: "#2f6fd1",
		Label: "#dbe7f7", LabelPrimary: "#f4f8fd", LabelSecondary: "#93a9c8", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #0a1a33 0%, #1d4f99 100%)",
	},
	Egypt: {
		PrimaryDark: "#1b140b", Primary: "#d9a441", TertiaryDark: "#2a1f11",
		Card: "#241a0e", CardBorder: "#54401f", HoverButton: "#1f8a8a",
		Label: "#eedfc0", LabelPrimary: "#faf1dd", LabelSecondary: "#b9a683", LabelBold: "#fff6e0",
		GradientBackground: "linear-gradient(135deg, #1b140b 0%, #4a3516 100%)",
	},
	Dometrain: {
		PrimaryDark: "#0d0d1a", Primary: "#ff6b35", TertiaryDark: "#15152b",
		Card: "#131326", CardBorder: "#2b2b52", HoverButton: "#e85a2a",
		Label: "#d8d8ee", LabelPrimary: "#f0f0fa", LabelSecondary: "#9494b8", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #0d0d1a 0%, #24244a 100%)",
	},
	Catppuccin: {
		PrimaryDark: "#1e1e2e", Primary: "#cba6f7", TertiaryDark: "#181825",
		Card: "#313244", CardBorder: "#45475a", HoverButton: "#89b4fa",
		Label: "#cdd6f4", LabelPrimary: "#cdd6f4", LabelSecondary: "#a6adc8", LabelBold: "#f5e0dc",
		GradientBackground: "linear-gradient(135deg, #1e1e2e 0%, #313244 100%)",
	},
	Dracula: {
		PrimaryDark: "#282a36", Primary: "#bd93f9", TertiaryDark: "#21222c",
		Card: "#343746", CardBorder: "#44475a", HoverButton: "#ff79c6",
		Label: "#f8f8f2", LabelPrimary: "#f8f8f2", LabelSecondary: "#6272a4", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #282a36 0%, #44475a 100%)",
	},
	Nord: {
		PrimaryDark: "#2e3440", Primary: "#88c0d0", TertiaryDark: "#3b4252",
		Card: "#3b4252", CardBorder: "#4c566a", HoverButton: "#81a1c1",
		Label: "#e5e9f0", LabelPrimary: "#eceff4", LabelSecondary: "#d8dee9", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #2e3440 0%, #434c5e 100%)",
	},
	OneDark: {
		PrimaryDark: "#282c34", Primary: "#61afef", TertiaryDark: "#21252b",
		Card: "#2c313a", CardBorder: "#3e4451", HoverButton: "#c678dd",
		Label: "#abb2bf", LabelPrimary: "#dcdfe4", LabelSecondary: "#7f848e", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #282c34 0%, #3e4451 100%)",
	},
	RosePine: {
		PrimaryDark: "#191724", Primary: "#ebbcba", TertiaryDark: "#1f1d2e",
		Card: "#26233a", CardBorder: "#403d52", HoverButton: "#c4a7e7",
		Label: "#e0def4", LabelPrimary: "#e0def4", LabelSecondary: "#908caa", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #191724 0%, #26233a 100%)",
	},
	SolarizedDark: {
		PrimaryDark: "#002b36", Primary: "#268bd2", TertiaryDark: "#073642",
		Card: "#073642", CardBorder: "#586e75", HoverButton: "#2aa198",
		Label: "#93a1a1", LabelPrimary: "#eee8d5", LabelSecondary: "#839496", LabelBold: "#fdf6e3",
		GradientBackground: "linear-gradient(135deg, #002b36 0%, #073642 100%)",
	},
	TokyoNight: {
		PrimaryDark: "#1a1b26", Primary: "#7aa2f7", TertiaryDark: "#16161e",
		Card: "#24283b", CardBorder: "#414868", HoverButton: "#bb9af7",
		Label: "#a9b1d6", LabelPrimary: "#c0caf5", LabelSecondary: "#565f89", LabelBold: "#ffffff",
		GradientBackground: "linear-gradient(135deg, #1a1b26 0%, #24283b 100%)",
	},
}

// DefaultPalette is the Unghosty palette.
func DefaultPalette() Palette {
	return palettes[Unghosty]
}
