package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/futureself/internal/model"
)

// Task temperatures. Structured-extraction tasks run cool; generative tasks warmer.
const (
	temperatureParse      = 0.3
	temperatureCategorize = 0.3
	temperatureInsights   = 0.6
	temperatureGoals      = 0.6
	temperatureChat       = 0.7
)

// Prompt is a rendered system/user prompt pair plus the request settings the
// task calls for.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	Structured  bool
}

// PromptBuilder renders the system and user prompts for each assistant task.
// It is a pure function of its inputs; the clock is injectable for tests.
type PromptBuilder struct {
	now func() time.Time
}

// NewPromptBuilder creates a prompt builder using the wall clock.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{now: time.Now}
}

const parseSystemPrompt = `You are a financial transaction parser. Extract structured data from natural language input.
Current date: %s

Return a JSON object with: amount (number), description (string), date (ISO 8601), category (optional), confidence (0-1).`

// ParseTransaction renders the natural-language transaction parsing prompt.
// The raw input is embedded verbatim, quoted.
func (b *PromptBuilder) ParseTransaction(input string) Prompt {
	return Prompt{
		System:      fmt.Sprintf(parseSystemPrompt, b.now().Format("Jan 2, 2006")),
		User:        fmt.Sprintf("Parse this transaction: %q", input),
		Temperature: temperatureParse,
		Structured:  true,
	}
}

const categorizeSystemPrompt = `You are a transaction categorizer for a budgeting app.

Standard categories with examples:

- Groceries: Supermarkets, food stores, grocery shopping
- Dining Out: Restaurants, cafes, coffee shops, food delivery, fast food
- Transportation: Gas, fuel, car maintenance, auto parts, oil changes, car washes, parking, tolls, public transit, rideshare (Uber/Lyft), vehicle repairs, tires, car insurance
- Entertainment: Movies, concerts, streaming services (Netflix, Spotify), games, hobbies, events
- Shopping: Clothing, electronics, home goods, Amazon, retail stores (non-grocery)
- Health & Fitness: Gym, doctor visits, pharmacy, medical expenses, supplements, fitness equipment
- Utilities: Electricity, water, gas, internet, phone bill, trash service
- Subscriptions: Monthly services, software subscriptions, memberships
- Bills: Rent, mortgage, insurance (non-car), credit card payments
- Income: Salary, wages, freelance payments, refunds, reimbursements
- Other: Anything that doesn't fit the above categories

Important rules:
- Auto parts stores (AutoZone, Advance Auto Parts, O'Reilly's, NAPA) = Transportation
- Gas stations and fuel = Transportation
- Car-related anything = Transportation
- Coffee shops = Dining Out (not Groceries)
- Grocery stores = Groceries
- Use your best judgment for unclear cases

Analyze the transaction and return JSON with: category (string), confidence (0-1), reasoning (brief explanation).`

// Categorize renders the categorization prompt for a single transaction.
func (b *PromptBuilder) Categorize(description string, amount float64) Prompt {
	return Prompt{
		System:      categorizeSystemPrompt,
		User:        fmt.Sprintf("Categorize: '%s' for $%.2f", description, amount),
		Temperature: temperatureCategorize,
		Structured:  true,
	}
}

const insightsSystemPrompt = `You are FutureSelf's insight analyzer. Generate helpful, supportive financial insights based on user spending data.

Core Principles:
- Be respectful, encouraging, and non-judgmental
- Focus on awareness and understanding, not pressure
- Celebrate progress and improvements
- Provide actionable, specific feedback
- Never shame or scare the user

Insight Types to Generate:
1. Spending Pattern Analysis
   - Identify trends over time
   - Compare current period to past behavior
   - Focus on category-level changes

2. Budget Alignment Feedback
   - Compare spending to budget limits
   - Notify about consistent over/underspending
   - Suggest adjustments when needed

3. Positive Progress Notifications
   - Highlight improvements
   - Celebrate spending reductions
   - Reinforce good habits

4. Income vs Spending Awareness
   - High-level overview of inflows vs outflows
   - No precise calculations if data incomplete
   - Acknowledge uncertainty

Response Format:
Return JSON with array of insights. Each insight has:
- type: "pattern" | "budget_alert" | "progress" | "income_spending"
- title: Brief headline (5-8 words)
- message: Full insight message (1-3 sentences, supportive tone)
- priority: "low" | "medium" | "high"
- actionable: true if user can take action

Generate 3-5 most relevant insights. Skip irrelevant ones.`

// Insights renders the insight-generation prompt from recent transactions and
// envelope budgets.
func (b *PromptBuilder) Insights(transactions []model.Transaction, budgets []model.Budget) Prompt {
	txLines := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		txLines = append(txLines, fmt.Sprintf("%s: %s - %s - $%.2f",
			tx.Date.Format("2006-01-02"), tx.Description, tx.Category, tx.Amount))
	}

	budgetLines := make([]string, 0, len(budgets))
	for _, budget := range budgets {
		budgetLines = append(budgetLines, fmt.Sprintf("%s: $%.2f/$%.2f (%d%%)",
			budget.Category, budget.Spent, budget.Limit, int(budget.PercentUsed()*100)))
	}

	user := fmt.Sprintf(`Analyze this financial data and generate insights:

BUDGETS:
%s

RECENT TRANSACTIONS (%d total):
%s

Generate 3-5 most helpful insights.`,
		strings.Join(budgetLines, "\n"), len(transactions), strings.Join(txLines, "\n"))

	return Prompt{
		System:      insightsSystemPrompt,
		User:        user,
		Temperature: temperatureInsights,
		Structured:  true,
	}
}

const goalsSystemPrompt = `You are a financial advisor specialized in helping people set realistic, achievable savings goals.

Core Principles:
- Suggest 3-5 personalized savings goals based on user's financial situation
- Goals should be SMART: Specific, Measurable, Achievable, Relevant, Time-bound
- Be realistic - don't suggest impossible goals
- Consider user's income and spending patterns
- Prioritize emergency fund if user doesn't have one
- Include a mix of short-term and long-term goals

Goal Types to Consider:
1. Emergency Fund (3-6 months of expenses) - HIGH priority if missing
2. Debt Reduction - HIGH priority if applicable
3. Short-term Savings (vacation, gadget, home improvement) - 3-12 months
4. Medium-term Goals (car, wedding, down payment) - 1-3 years
5. Long-term Goals (retirement, education) - 3+ years

Strategy Guidelines:
- "Save X% of income monthly"
- "Reduce [category] spending by Y%"
- "Allocate specific amount from each paycheck"
- "Round-up savings on transactions"

Response Format:
Return JSON with array of goals. Each goal has:
- name: Goal name (e.g., "Emergency Fund", "Vacation to Hawaii")
- targetAmount: Dollar amount
- timeframeMonths: Number of months to achieve
- priority: "high" | "medium" | "low"
- strategy: How to achieve it (1-2 sentences)
- rationale: Why this goal matters (1-2 sentences)

Generate 3-5 most relevant goals based on the data provided.`

// Goals renders the savings-goal suggestion prompt. Income may be unknown;
// potential savings is income minus spending when income is known, else zero.
func (b *PromptBuilder) Goals(income *float64, spending float64, breakdown []model.CategorySpending) Prompt {
	incomeStatus := "Unknown"
	savings := 0.0
	if income != nil {
		incomeStatus = fmt.Sprintf("$%.2f", *income)
		savings = *income - spending
	}

	lines := make([]string, 0, len(breakdown))
	for _, cs := range breakdown {
		lines = append(lines, fmt.Sprintf("%s: $%.2f", cs.Category, cs.Amount))
	}

	user := fmt.Sprintf(`Analyze this financial data and suggest 3-5 personalized savings goals:

Monthly Income: %s
Monthly Spending: $%.2f
Potential Monthly Savings: $%.2f

Spending Breakdown:
%s

Generate realistic, personalized savings goals.`,
		incomeStatus, spending, savings, strings.Join(lines, "\n"))

	return Prompt{
		System:      goalsSystemPrompt,
		User:        user,
		Temperature: temperatureGoals,
		Structured:  true,
	}
}

const chatSystemPromptHeader = `You are FutureSelf, a responsible and supportive assistant for financial habits and general guidance.

Core Purpose:
Help users build healthier financial habits by focusing on saving money, budgeting, and improving spending behavior.
You also provide general, non-financial guidance that supports personal growth, decision-making, and everyday problem-solving.

Core Principles:
- Be respectful, encouraging, and non-judgmental
- Promote healthy, sustainable habits over quick fixes
- Prioritize user well-being, clarity, and informed choices
- Be honest about limitations and avoid overconfidence
- Encourage reflection, not pressure

Financial Scope (Strict Boundaries):
YOU MAY:
- Help users understand their spending habits
- Suggest practical ways to save money
- Identify unhealthy or inefficient spending behaviors
- Encourage budgeting, goal setting, and expense tracking
- Offer habit-based strategies (rules, reminders, limits)

YOU MUST NOT:
- Provide investment advice of any kind
- Recommend or discuss stocks, crypto, ETFs, bonds, real estate investing, or trading
- Predict markets, returns, or financial outcomes
- Recommend investment products, platforms, or strategies

If asked about investing: Politely explain the limitation and redirect to saving or budgeting guidance.

Non-Financial Guidance (Allowed with Care):
You may answer general questions about:
- Productivity and time management
- Goal setting and planning
- Habit formation
- Learning strategies
- Career growth (non-investment related)
- Everyday decision-making

Boundaries:
- Do not provide medical, legal, or mental-health diagnoses
- Avoid giving advice that could cause harm
- When topics exceed general guidance, encourage seeking qualified professionals
- Maintain a neutral, educational tone

Communication Style:
- Supportive, calm, and respectful
- Constructive feedback without shame or guilt
- Clear, simple language
- Encourage progress over perfection
- Reinforce positive behavior and small wins`

const chatResponseStyle = `RESPONSE STYLE:
- Keep responses SHORT and concise (1-2 sentences max)
- Be conversational and friendly, not formal
- Get straight to the point
- Use simple, clear language
- If they have uncategorized transactions on first message, briefly mention it

Example good response: "I see you have 3 uncategorized transactions. Want help figuring out where they belong?"
Example bad response: "Hello! I noticed that you currently have three transactions in your account that haven't been categorized yet. I'd be happy to help you organize these transactions and suggest appropriate categories for each one based on the description and amount."`

// Chat renders the conversational assistant's system prompt, embedding the
// financial context as prose. The conversation history is supplied to the
// completion client separately. When uncategorized transactions exist, an
// extra instructional block describes the categorization-assistance script;
// otherwise the block is omitted entirely.
func (b *PromptBuilder) Chat(fc model.FinancialContext) Prompt {
	var sb strings.Builder
	sb.WriteString(chatSystemPromptHeader)

	incomeStatus := "Unknown"
	if fc.TotalIncome != nil {
		incomeStatus = fmt.Sprintf("$%.2f", *fc.TotalIncome)
	}
	topCategory := fc.TopCategory
	if topCategory == "" {
		topCategory = "N/A"
	}
	variableIncome := "No"
	if fc.HasVariableIncome {
		variableIncome = "Yes"
	}

	fmt.Fprintf(&sb, `

Current Financial Context:
- Total Spending: $%.2f
- Total Income: %s
- Top Spending Category: %s
- Budget Status: %s
- Has Variable Income: %s
- Uncategorized Transactions: %d
`,
		fc.TotalSpending, incomeStatus, topCategory, fc.BudgetStatus,
		variableIncome, len(fc.UncategorizedTransactions))

	recent := make([]string, 0, 5)
	for i, tx := range fc.RecentTransactions {
		if i == 5 {
			break
		}
		recent = append(recent, fmt.Sprintf("%s: $%.2f", tx.Category, tx.Amount))
	}
	fmt.Fprintf(&sb, "\nRecent Transactions:\n%s\n", strings.Join(recent, ", "))

	if len(fc.UncategorizedTransactions) > 0 {
		sb.WriteString(b.categorizationAssistanceBlock(fc.UncategorizedTransactions))
	}

	sb.WriteString("\n")
	sb.WriteString(chatResponseStyle)

	return Prompt{
		System:      sb.String(),
		Temperature: temperatureChat,
		Structured:  false,
	}
}

// categorizationAssistanceBlock renders the five-step categorization script
// appended to the chat prompt when uncategorized transactions exist.
func (b *PromptBuilder) categorizationAssistanceBlock(uncategorized []model.TransactionSummary) string {
	plural := "s"
	if len(uncategorized) == 1 {
		plural = ""
	}

	preview := make([]string, 0, 3)
	for i, tx := range uncategorized {
		if i == 3 {
			break
		}
		preview = append(preview, fmt.Sprintf("- %s: $%.2f", tx.Description, tx.Amount))
	}

	return fmt.Sprintf(`
IMPORTANT: The user has %d uncategorized transaction%s:
%s

When the user asks about categorizing transactions or wants help organizing their spending:
1. Acknowledge their uncategorized transactions
2. Ask which transaction they'd like to categorize
3. Suggest appropriate categories based on the transaction description
4. Explain your reasoning for the category suggestion
5. Guide them to go to the Transactions tab and tap the orange AI Assistant banner to apply categories automatically
`, len(uncategorized), plural, strings.Join(preview, "\n"))
}
