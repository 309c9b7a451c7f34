package content

// OddSet is a list of items where exactly one does not belong to Category.
type OddSet struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
	Odd      string   `json:"odd"`
}

// Puzzle is a question with a canonical answer. Open puzzles accept any
// sufficiently long answer and have no canonical one.
type Puzzle struct {
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Hint     string `json:"hint"`
	Open     bool   `json:"open,omitempty"`
}

// Bank holds every pool the exercise variants draw from.
type Bank struct {
	Words         []string
	Sequences     [][]int
	SymbolGrids   [][]string
	SymbolPalette []string
	Passages      []string
	OddSets       []OddSet

	Brainstorm []string
	ProsCons   []string
	WhatIf     []string

	Riddles  []Puzzle
	Logic    []Puzzle
	Patterns []Puzzle

	Reflective []string
	Letter     []string
	Story      []string
}

// DefaultBank returns a fresh copy of the built-in pools.
func DefaultBank() *Bank {
	b := &Bank{
		Words: []string{
			"lantern", "gravity", "copper", "whisper", "marble", "eclipse", "thunder", "fossil",
			"velvet", "chimney", "anchor", "blossom", "cactus", "dagger", "ember", "feather",
			"glacier", "harbor", "insect", "jungle", "kettle", "lemon", "mirror", "noodle",
			"oyster", "pilgrim", "quartz", "ribbon", "saddle", "tundra", "urchin", "volcano",
			"walnut", "yonder", "zipper", "acorn", "bridge", "candle", "desert", "falcon",
			"sponge", "crystal", "pepper", "summit", "lizard", "cobalt", "timber", "orchid",
		},
		Sequences: [][]int{
			{7, 3, 9, 1, 5, 8, 2, 6},
			{4, 8, 1, 7, 3, 9, 5, 2},
			{6, 2, 5, 9, 1, 4, 8, 3},
		},
		SymbolGrids: [][]string{
			{"★", "▲", "●", "■", "♦", "★", "▲", "●", "■", "♦", "▲", "●"},
			{"♠", "♥", "♣", "♦", "♠", "♥", "♣", "♦", "♠", "♥", "♣", "♦"},
			{"△", "○", "□", "◇", "△", "○", "□", "◇", "△", "○", "□", "◇"},
		},
		SymbolPalette: []string{"★", "▲", "●", "■", "♦", "♠", "♥", "♣", "△", "○", "□", "◇"},
		Passages: []string{
			"The quick brown fox jumps over the lazy dog near the riverbank every morning.",
			"Patience is not the ability to wait but how you act while you are waiting.",
			"In the middle of every difficulty lies an opportunity worth pursuing.",
		},
		OddSets: []OddSet{
			{Category: "fruits", Items: []string{"apple", "mango", "banana", "hammer", "grape"}, Odd: "hammer"},
			{Category: "instruments", Items: []string{"piano", "guitar", "trumpet", "painting", "violin"}, Odd: "painting"},
			{Category: "capitals", Items: []string{"Paris", "Berlin", "Tokyo", "Amazon", "Rome"}, Odd: "Amazon"},
		},
		Brainstorm: []string{
			"You wake up and discover you can no longer read. What are the first 3 things you do?",
			"A café is losing customers. List 3 specific creative reasons why and one fix for each.",
			"You have €100 and one free afternoon. How do you turn it into the most value for others?",
		},
		ProsCons: []string{
			"Moving to a new city where you know nobody",
			"Quitting your job to start a business",
			"Deleting all social media permanently",
		},
		WhatIf: []string{
			"What if everyone on Earth could hear your thoughts for one hour?",
			"What if you woke up tomorrow as the leader of your country?",
			"What if you discovered your best friend had been lying to you for years?",
		},
		Riddles: []Puzzle{
			{Question: "A farmer has 17 sheep. All but 9 die. How many sheep does he have left?", Answer: "9", Hint: "Read it carefully. The answer is in the question."},
			{Question: "What has keys but no locks, space but no room, and you can enter but can't go inside?", Answer: "keyboard", Hint: "Think about everyday objects you use right now."},
			{Question: "I speak without a mouth and hear without ears. I have no body but come alive with wind. What am I?", Answer: "echo", Hint: "Think about what happens in mountains or caves."},
			{Question: "The more you take, the more you leave behind. What am I?", Answer: "footsteps", Hint: "Think about walking."},
		},
		Logic: []Puzzle{
			{Question: "Alice is older than Bob. Bob is older than Carol. Carol is older than Dave. Who is the youngest?", Answer: "dave", Hint: "Follow the chain step by step."},
			{Question: "A rooster lays an egg on top of a barn roof. Which way does it roll?", Answer: "roosters don't lay eggs", Hint: "Read the question very carefully."},
			{Question: "You have two buckets: one holds 3L, one holds 5L. How do you measure exactly 4L?", Hint: "Fill the 5L, pour into 3L, empty 3L, pour remaining 2L into 3L, refill 5L, pour 1L into 3L.", Open: true},
		},
		Patterns: []Puzzle{
			{Question: "What comes next? 2, 4, 8, 16, 32, ___", Answer: "64", Hint: "Each number is doubled."},
			{Question: "What comes next? 1, 1, 2, 3, 5, 8, ___", Answer: "13", Hint: "Each number is the sum of the two before it."},
			{Question: "What comes next? A, C, E, G, ___", Answer: "i", Hint: "Think about every other letter in the alphabet."},
		},
		Reflective: []string{
			"Write about a moment when you changed your mind about something important.",
			"Describe your perfect ordinary Tuesday in vivid, specific detail.",
			"Tell the story of an object near you: where it came from and what it has witnessed.",
		},
		Letter: []string{
			"Write a short letter to your 10-years-younger self. What do you most need them to know?",
			"Write a thank-you letter to someone who shaped you, but never send it.",
			"Write a letter from your future self, 10 years from now.",
		},
		Story: []string{
			`Write the opening paragraph of a story that begins: "Nobody expected the library to catch fire."`,
			"Write a scene: two strangers share an umbrella in the rain for 3 minutes.",
			"Write a story in exactly 6 sentences. It must include a door, a secret, and a number.",
		},
	}
	return b
}

// Clone returns a copy of the bank whose top-level pools can be replaced
// without affecting b.
func (b *Bank) Clone() *Bank {
	c := *b
	c.Brainstorm = append([]string(nil), b.Brainstorm...)
	c.ProsCons = append([]string(nil), b.ProsCons...)
	c.WhatIf = append([]string(nil), b.WhatIf...)
	c.Reflective = append([]string(nil), b.Reflective...)
	c.Letter = append([]string(nil), b.Letter...)
	c.Story = append([]string(nil), b.Story...)
	return &c
}
