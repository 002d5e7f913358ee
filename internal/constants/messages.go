package constants

// Chat commands understood by the dispatcher.
const (
	CmdStart    = "/start"
	CmdHelp     = "/help"
	CmdNewHabit = "/new_habit"
	CmdSuccess  = "/success"
	CmdBreak    = "/break"
	CmdStats    = "/stats"
)

// Reply texts. Templates take fmt verbs as noted.
const (
	MsgStart = "👋 Hi! I'm HabitBreaker, and I'll help you get rid of a bad habit.\n\n" +
		"Start with /new_habit to tell me what you want to quit, then check in every day " +
		"with /success or /break. Use /stats to see how you're doing."

	MsgHelp = "📖 Commands:\n\n" +
		"/new_habit - choose the habit you want to quit\n" +
		"/success - I held on today\n" +
		"/break - I slipped today\n" +
		"/stats - show my progress\n" +
		"/help - show this message"

	MsgAskHabitName = "🎯 Which bad habit do you want to beat?\n\nFor example: 'smoking', 'nail biting', 'procrastination'"

	// %s: habit name
	MsgHabitCreated = "✅ Habit *%s* is now being tracked. Check in every day with /success or /break."

	MsgEmptyName   = "❌ The habit name cannot be empty. Try again with /new_habit"
	MsgNameMarkup  = "❌ Please use plain text for the habit name, without <tags>. Try again with /new_habit"
	MsgInvalidName = "❌ I can't use that habit name. Try again with /new_habit"
	// %d: maximum name length
	MsgNameTooLong = "❌ That name is too long, keep it under %d characters. Try again with /new_habit"

	MsgNoHabit       = "🤷 You are not tracking a habit yet. Start with /new_habit"
	MsgBreak         = "😔 Slips happen. Your streak starts over, but every day you hold on still counts. Tomorrow is a new chance!"
	MsgGenericError  = "❌ Something went wrong while saving that. Please try again."
	MsgNotUnderstood = "🤔 I didn't understand that. Use the menu commands or /help"
	MsgSlowDown      = "⏳ Easy there! Give me a second before the next command."

	// %d: new streak length
	MsgSuccess = "🎉 Great job! Your streak is now *%d* day(s)."

	// %s name, %d current, %d longest, %d total, %d breaks, %s success rate
	MsgStats = "📊 Your progress with *%s*\n\n" +
		"✅ Current streak: *%d days*\n" +
		"🏆 Longest streak: *%d days*\n" +
		"📅 Successful days: *%d*\n" +
		"😔 Days with a slip: *%d*\n" +
		"📈 Success rate: *%s%%*\n\n" +
		"Keep it up! 💫"
)

// Motivation lines appended to a success reply, one chosen at random.
var Motivation = []string{
	"💪 Every day without it makes you stronger.",
	"🌱 Small wins add up to big changes.",
	"🔥 You're building a new version of yourself.",
	"🧠 Your brain is rewiring itself right now. Keep going!",
	"🏁 The hardest part is behind you. Stay on track.",
}

// Greetings treated as /start.
var Greetings = []string{"hello", "hi", "start", "привет"}

// MainKeyboard is the reply keyboard shown after most replies.
var MainKeyboard = []string{"/success ✅", "/break 😔", "/stats 📊", "/help ❓"}
