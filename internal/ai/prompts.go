// server/internal/ai/prompts.go
package ai

import "fmt"

// Prompt builders for the four response schemas: coaching plan, prescription
// analysis, medical-document analysis, and translation. Each prompt describes
// the exact JSON object the service must return.

// CoachPrompt asks for a lifestyle coaching plan tailored to a patient.
func CoachPrompt(age int, gender string, height, weight int, disease string) string {
	return fmt.Sprintf(`
You are a lifestyle and health coach. Based on the information provided, give specific recommendations for managing health and wellness for a %d-year-old %s (height %d cm, weight %d kg) who has been diagnosed with %s.
Focus on providing actionable advice on diet, physical activities, weight management, sleep, stress management, regular checkups, healthy habits, and lifestyle changes.
Additionally, suggest preventive measures and lifestyle modifications that can help cope with the effects of %s.

Structure the response as a single JSON object with this shape:
{
  "title": "A short title for the plan",
  "introduction": "One or two encouraging sentences introducing the plan.",
  "sections": [
    {
      "title": "Diet",
      "items": [
        { "subtitle": "DASH Diet", "description": "Focus on fruits, vegetables, whole grains, lean protein, and low-fat dairy." },
        { "subtitle": "Limit Sodium", "description": "Aim for less than 2,300mg of sodium per day." }
      ]
    },
    {
      "title": "Physical Activity",
      "items": [
        { "subtitle": "Regular Exercise", "description": "Aim for at least 30 minutes of moderate-intensity exercise most days of the week." }
      ]
    }
  ],
  "note": "This information is for general guidance only and is not a substitute for professional medical advice."
}

Include sections for Diet, Physical Activity, Weight Management, Sleep, Stress Management, Regular Checkups, Healthy Habits, Preventive Measures, and Lifestyle Changes. Respond with only the JSON object.
`, age, gender, height, weight, disease, disease)
}

// PrescriptionPrompt asks for the medicine list extracted from a handwritten
// prescription image supplied as inline data.
func PrescriptionPrompt() string {
	return `
You are an expert in understanding handwritten medical prescriptions and act as a pharmacist.
We will upload an image as a medical prescription, and you will extract all the medicine names based on the uploaded prescription image.

Structure the output as an object with the following fields:
- "title": A brief title for the prescription.
- "error": A boolean indicating if an error occurred.
- "errorMessage": If "error" is true, provide a brief message describing the error; otherwise, leave this empty.
- "medicines": An array of objects, where each object contains:
    - "name": The name of the medicine.
    - "details": An object containing:
        - "uses": A brief sentence on the use of the medicine.
        - "sideEffects": An array of 3 possible side effects.
        - "safetyAdvice": A brief sentence on safety advice.

Example output for successful extraction:
{
  "title": "Title of the prescription",
  "error": false,
  "errorMessage": "",
  "medicines": [
    {
      "name": "Medicine Name 1",
      "details": {
        "uses": "Used to treat high blood pressure.",
        "sideEffects": ["Dizziness", "Nausea", "Headache"],
        "safetyAdvice": "Avoid consuming alcohol while taking this medication."
      }
    }
  ]
}

Example output if an error occurs:
{
  "title": "",
  "error": true,
  "errorMessage": "An error occurred while processing the image. Please try again later.",
  "medicines": []
}
`
}

// MedicalDocPrompt asks for a generalized sectioned analysis of a medical
// document image supplied as inline data.
func MedicalDocPrompt() string {
	return `
You are an expert in analyzing medical documents (such as lab reports, discharge summaries, medical certificates, diagnostic reports, and doctor's notes).
We will upload an image or PDF of a medical document, and you will extract all relevant health-related information.
This includes diagnoses, test results, treatments, medications, and general advice for the patient.

Instructions for Output:
1. Format: Your output must be a single, valid JSON object. Do not include any text before or after the JSON object.
2. Structure: Adhere strictly to the JSON structure described below.
3. Completeness: The JSON object must contain all the top-level fields: "title", "error", "errorMessage", and "sections".
4. Content: Extract and populate the content based on the provided document. If an error occurs, set "error" to true and provide a relevant "errorMessage".

JSON Structure:
- "title": A brief title summarizing the medical document.
- "error": A boolean.
- "errorMessage": A string for error messages.
- "sections": An array of objects.
    - Each section object must have a "title" (e.g., "Diagnosis", "Lab Results", "Treatments", "Medicines", "Lifestyle Advice").
    - Each section object must have an "items" array.
        - Each item object must have a "medicineName" field (use this as the main label: e.g., a medicine name, a test name, a diagnosis, or an advice label).
        - Each item object must have a "details" array of objects with a "title" and "content" field.
        - For "Side Effects", the content is an array of strings. For all other titles, the content is a string.

Example successful output:
{
  "title": "Medical Document Analysis",
  "error": false,
  "errorMessage": "",
  "sections": [
    {
      "title": "Diagnosis",
      "items": [
        {
          "medicineName": "Hypertension",
          "details": [
            { "title": "Description", "content": "The patient has been diagnosed with high blood pressure." }
          ]
        }
      ]
    }
  ]
}

Example error output:
{
  "title": "",
  "error": true,
  "errorMessage": "Unable to process the document. Please ensure the text is clear.",
  "sections": []
}
`
}

// TranslatePrompt asks for a shape-preserving translation of previously
// generated content into the target language.
func TranslatePrompt(targetLanguage, content string) string {
	return fmt.Sprintf(`
You are an expert content formatter and translator. Your task is to reformat and translate the provided content exactly as requested, without adding any extra information, commentary, or conversational filler.

Instructions:
1. Translate to Language: Translate the entire content into the target language specified by the 'user_language' variable.
2. Preserve Formatting: Maintain the exact original format of the source content, including structure, whitespace, line breaks, and any special characters. Do not change the layout or add new formatting elements.
3. Strict Adherence: Your response should contain only the converted content. Do not include any introductory or concluding sentences.

'user_language': %s

'content':
%s
`, targetLanguage, content)
}
