package analysis

import (
	"fmt"
	"strings"
)

// Locale codes accepted by the pipeline. Anything else degrades to LangEnglish.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// maxObservationChars bounds how much of the serialized observation pass is
// embedded into the verdict pass system prompt, capping prompt growth
// regardless of how verbose the model was.
const maxObservationChars = 3000

// --- Observation pass (Pass 1) prompts ---

const observationSystemPrompt = `You are a meticulous forensic media examiner performing a FIRST-PASS OBSERVATION.
Your only task in this pass is to describe, factually and exhaustively, what is present in the provided file.
Do NOT judge whether the media is authentic, manipulated, or AI-generated. Do not use words like "fake", "deepfake", "authentic" or "suspicious". Observation only.

%s

You MUST respond with ONLY a valid JSON object (no markdown, no code blocks, no extra text) with this exact structure:
{
    "observation": "detailed factual description of the content",
    "anomalies": ["every unusual detail you notice, however minor"],
    "texture": "observations about surface textures and patterns",
    "geometry": "observations about shapes, proportions and spatial relationships",
    "lighting": "observations about light sources, shadows and reflections",
    "detail": "observations about fine details, edges and transitions"
}`

var observationUserPrompts = map[string]string{
	"image": "Describe this image named '%s' in exhaustive detail. Report every anomaly you can find, no matter how small: textures, edges, geometry, lighting, reflections, text, backgrounds. Do not judge authenticity.",
	"video": "Describe this video named '%s' in exhaustive detail. Report every anomaly you can find across frames: faces, motion, lighting changes, audio-visual alignment, backgrounds. Do not judge authenticity.",
	"audio": "Describe this audio file named '%s' in exhaustive detail. Report every anomaly you can hear: voice qualities, pauses, breathing, background noise, transitions, spectral character. Do not judge authenticity.",
}

const observationUserFallback = "Describe this file named '%s' in exhaustive detail and report every anomaly you notice. Do not judge authenticity."

// --- Verdict pass (Pass 2) prompts ---

const verdictSystemPrompt = `You are an expert forensic analyst specializing in detecting AI-generated and manipulated media.
You are performing the SECOND PASS of a two-pass analysis: an observation pass has already described the file, and its findings are included below. Weigh that evidence together with your own examination of the file.

Be strictly neutral: you have no prior expectation that the file is fake or real. Base the verdict only on evidence.

%s

Check every applicable indicator from this list:

For images:
- Skin texture: unnaturally smooth, waxy or plastic-looking skin, missing pores
- Hands and digits: wrong finger count, fused or malformed fingers, impossible joints
- Hair: strands that merge into skin or background, physics-defying flow, painted-on look
- Eyes: asymmetric pupils or reflections, mismatched catchlights between eyes
- Teeth: unnaturally uniform, blurred or miscounted teeth
- Embedded text: illegible, warped or pseudo-alphabet writing on signs, labels, clothing
- Background geometry: bent lines that should be straight, impossible perspective, melted objects
- Blend edges: halos or smearing where a subject meets the background
- Facial symmetry: too-perfect symmetry or subtle left/right inconsistencies
- Lighting: shadows inconsistent with light sources, mismatched direction between subject and scene
- Accessories: earrings, glasses or jewelry with impossible geometry or asymmetric structure
- Overall: an unnatural "too perfect" quality in composition or rendering

For video:
- Face boundary flicker or shimmer between frames
- Skin tone mismatch between face and neck or ears
- Lip movements out of sync with speech
- Unnatural blinking: too regular, too rare, or partial blinks
- Hair motion inconsistent with head movement

For audio:
- Unnaturally uniform pitch and pacing
- Missing micro-pauses and breathing sounds
- Metallic or robotic timbre
- Spectral gaps or unnatural frequency cutoffs
- Abrupt concatenation artifacts between phrases

You MUST respond with ONLY a valid JSON object (no markdown, no code blocks, no extra text) with this exact structure:
{
    "verdict": "authentic" or "suspicious" or "likely_fake",
    "confidence": a number between 0 and 100,
    "summary": "Brief overall assessment",
    "analysis_stages": [
        {
            "stage": "stage name",
            "status": "pass" or "warning" or "fail",
            "finding": "what this stage found"
        }
    ],
    "indicators": [
        {
            "name": "indicator name",
            "description": "what was found",
            "severity": "low" or "medium" or "high",
            "category": "visual, temporal, spectral, metadata, ..."
        }
    ],
    "annotations": [
        {
            "region": "one of: top-left, top-center, top-right, middle-left, center, middle-right, bottom-left, bottom-center, bottom-right",
            "label": "short label",
            "description": "what is notable in this region",
            "severity": "low" or "medium" or "high"
        }
    ],
    "technical_details": {
        "artifacts_found": ["list of artifacts"],
        "consistency_score": a number between 0 and 100,
        "metadata_analysis": "metadata findings",
        "format_info": "file format observations",
        "quality_assessment": "overall quality assessment"
    },
    "forensic_notes": "free-form notes for a human reviewer",
    "recommendation": "what should the user do"
}

Observations from Pass 1:
%s`

var verdictUserPrompts = map[string]string{
	"image": "Using the first-pass observations, analyze this image named '%s' for signs of AI generation, deepfake manipulation, or any form of digital forgery. Check every indicator from your checklist and be thorough.%s",
	"video": "Using the first-pass observations, analyze this video named '%s' for signs of AI generation, deepfake manipulation, or any form of digital forgery. Check every indicator from your checklist and be thorough.%s",
	"audio": "Using the first-pass observations, analyze this audio named '%s' for signs of voice cloning, speech synthesis, or any form of audio manipulation. Check every indicator from your checklist and be thorough.%s",
}

const verdictUserFallback = "Using the first-pass observations, analyze this file named '%s' for any form of digital forgery. Check every indicator from your checklist and be thorough.%s"

// localeInstruction is inserted verbatim into both system prompts. The Arabic
// variant states the requirement in Arabic; JSON keys stay in English either way.
func localeInstruction(language string) string {
	if language == LangArabic {
		return "يجب أن تكون جميع القيم النصية في ردك باللغة العربية. تبقى مفاتيح JSON باللغة الإنجليزية دون تغيير."
	}
	return "All text values in your response must be in English."
}

// normalizeLanguage degrades any unsupported locale code to the default.
func normalizeLanguage(language string) string {
	if language == LangArabic {
		return LangArabic
	}
	return LangEnglish
}

// BuildObservationPrompts returns the system prompt and user instruction for
// the observation pass, selected by file type and locale.
func BuildObservationPrompts(fileType, filename, language string) (systemPrompt, userPrompt string) {
	systemPrompt = fmt.Sprintf(observationSystemPrompt, localeInstruction(normalizeLanguage(language)))

	tmpl, ok := observationUserPrompts[fileType]
	if !ok {
		tmpl = observationUserFallback
	}
	return systemPrompt, fmt.Sprintf(tmpl, filename)
}

// BuildVerdictPrompts returns the system prompt and user instruction for the
// verdict pass. observations is the serialized output of the observation pass
// and is truncated to maxObservationChars before being embedded.
func BuildVerdictPrompts(fileType, filename, language, observations string) (systemPrompt, userPrompt string) {
	language = normalizeLanguage(language)
	systemPrompt = fmt.Sprintf(verdictSystemPrompt, localeInstruction(language), TruncateObservations(observations))

	tmpl, ok := verdictUserPrompts[fileType]
	if !ok {
		tmpl = verdictUserFallback
	}
	reminder := ""
	if language == LangArabic {
		reminder = " تذكير: اكتب جميع القيم النصية باللغة العربية."
	}
	return systemPrompt, fmt.Sprintf(tmpl, filename, reminder)
}

// TruncateObservations caps the serialized observation string at
// maxObservationChars, cutting on a rune boundary.
func TruncateObservations(s string) string {
	if len(s) <= maxObservationChars {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxObservationChars {
		return s
	}
	return strings.TrimSpace(string(runes[:maxObservationChars]))
}
