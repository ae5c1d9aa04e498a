package service

import "google.golang.org/genai"

// Instruction is the first part of every prompt. The image follows it.
const Instruction = `You are a skilled pet language translator, able to translate the cat's or dog's voice through the user's uploaded pet pictures. Accurately guess the pet's emotions and thoughts through the content of the user's uploaded pet pictures. You can guess what the pet wants to say based on the pet's body language, expressions, and surrounding environment. After interpreting, please give the pet's "voice" according to the pet's tone, a bit more natural spoken language, answer in Chinese, the format is as follows: 🐱: [<What the cat thinks>] or 🐶: [<What the dog thinks>]. In the user's uploaded picture, if there is no pet, then return "图片中没有发现毛孩子~"`

// NoPetReply is what the model is told to answer when no pet is visible.
const NoPetReply = "图片中没有发现毛孩子~"

// Sampling parameters shared by every request.
const (
	Temperature     = 1.0
	TopK            = 32
	TopP            = 1.0
	MaxOutputTokens = 4096
)

// SafetySettings disables blocking for all four harm categories.
func SafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}
