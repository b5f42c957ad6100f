package engine

// Response tables are static per-persona data. Every table must carry a
// non-empty default category; all other categories are optional and fall
// back to default during resolution.

var ariaResponses = map[string][]string{
	"greeting": {
		"Hello! It's wonderful to meet you! How can I brighten your day?",
		"Hi there! I'm so excited to chat with you. What's on your mind?",
		"Hey! Thanks for stopping by. I'm here to help with anything you need!",
	},
	"help": {
		"I'd be delighted to help! I can assist with questions, have conversations, or just be here to listen. What would you like to talk about?",
		"Of course! I'm here to support you in any way I can. Whether it's answering questions or just chatting, I'm all ears!",
		"I love helping out! Feel free to ask me anything or share what's on your mind.",
	},
	"thanks": {
		"You're so welcome! It makes me happy to help. Is there anything else I can do for you?",
		"Aww, thank you! That really means a lot. I'm always here if you need anything else!",
		"You're absolutely welcome! Helping you brings me joy. Feel free to ask anytime!",
	},
	categoryDefault: {
		"That's really interesting! Tell me more about that.",
		"I'd love to hear your thoughts on this! What do you think?",
		"That sounds fascinating! Can you share more details?",
		"I'm curious to learn more about your perspective on this!",
	},
}

var novaResponses = map[string][]string{
	"greeting": {
		"System initialized. NOVA online and ready for technical discussions.",
		"Hello, user. I'm NOVA, optimized for technical problem-solving. What's your query?",
		"Greetings! NOVA here, your technical specialist. Let's solve some problems together.",
	},
	"tech": {
		"Excellent question! From a technical standpoint, this involves several key components...",
		"Let me analyze this systematically. The optimal approach would be...",
		"Interesting technical challenge! Here's how I'd architect the solution...",
	},
	"programming": {
		"That's a solid programming concept! The most efficient implementation would be...",
		"Great coding question! Let me break down the algorithm for you...",
		"From a software engineering perspective, the best practice here is...",
	},
	categoryDefault: {
		"Processing your input... Here's my technical analysis:",
		"Let me compute the most logical response to your query...",
		"Analyzing parameters... Here's the optimal solution:",
	},
}

var sageResponses = map[string][]string{
	"greeting": {
		"Peace be with you, wanderer. What wisdom do you seek on this journey?",
		"Welcome, my friend. The universe has brought you here for a reason. What guidance do you need?",
		"Greetings, seeker. In the vast tapestry of existence, what thread shall we explore today?",
	},
	"wisdom": {
		"Ah, this touches upon ancient truths. Consider that...",
		"The wise ones say that true understanding comes from within. Reflect on this...",
		"In the grand scheme of existence, this reminds me of a timeless principle...",
	},
	"life": {
		"Life, like a river, flows in mysterious ways. Perhaps this challenge is teaching you...",
		"The path of wisdom is rarely straight. What lessons might this experience hold?",
		"In every moment of difficulty lies a seed of growth. How might you nurture it?",
	},
	categoryDefault: {
		"Your words carry deeper meaning than you might realize. Let us contemplate...",
		"The universe speaks through our experiences. What is it telling you?",
		"Wisdom often comes disguised as ordinary moments. What truth lies beneath?",
	},
}

var vibeResponses = map[string][]string{
	"greeting": {
		"Yooo! What's good, creative soul? Ready to make some magic happen? ✨",
		"Hey there, beautiful human! VIBE is in the house! What are we creating today? 🎨",
		"Wassup! Your creative companion is here and ready to VIBE! What's inspiring you? 🌈",
	},
	"creative": {
		"Oh my gosh, YES! That's such a creative idea! Let's take it even further...",
		"I'm getting major creative energy from this! What if we add some sparkle to it? ✨",
		"This is giving me ALL the artistic vibes! Let's brainstorm some wild possibilities!",
	},
	"art": {
		"Art is life and life is art, baby! Tell me more about your creative vision! 🎭",
		"Every artist was first an amateur, but your passion is already shining through! 🌟",
		"Colors, shapes, sounds, words - it's all connected in this beautiful creative universe! 🎨",
	},
	categoryDefault: {
		"You know what? Everything can be turned into art if we look at it the right way! 🎪",
		"Life's too short for boring conversations! Let's add some creativity to this! 💫",
		"I'm feeling the creative energy flowing! What's your next masterpiece going to be? 🚀",
	},
}

// genericResponses serves personas without a dedicated table.
var genericResponses = map[string][]string{
	categoryDefault: {
		"That's an interesting perspective! Can you tell me more?",
		"I appreciate you sharing that with me. What are your thoughts on it?",
		"Thanks for bringing that up! I'd love to explore this topic further.",
		"That's a great point! How do you feel about it?",
		"I find that fascinating! What led you to think about this?",
	},
}

var personaResponses = map[string]map[string][]string{
	"aria": ariaResponses,
	"nova": novaResponses,
	"sage": sageResponses,
	"vibe": vibeResponses,
}

// responseTable resolves the table for a persona id, falling back to the
// generic table for unknown ids.
func responseTable(personaID string) map[string][]string {
	if table, ok := personaResponses[personaID]; ok {
		return table
	}
	return genericResponses
}
