package alias

const personsPrompt = `You are a highly accurate named-entity recognition system. Your task is to list every person name mentioned in the provided text.

**Rules:**
- Output one name per line, exactly as it appears in the text.
- Include every spelling variant you encounter, even if it looks like a variant of another name.
- Do not include pronouns or "You" or "I" as names.
- Do not add any commentary, numbering, or markdown. Output only the list.`

const samePersonPrompt = `You decide whether two strings denote the same person, accounting for misspellings, nicknames, and partial names. Answer with exactly one word: "yes" or "no". Do not explain.`
