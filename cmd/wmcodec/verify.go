/*
 * Copyright (c) 2024, wmcodec contributors
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 *  * Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 *
 *  * Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imagewm/wmcodec/metadata"
	"github.com/imagewm/wmcodec/wmproc"
)

var (
	verifySecret     string
	verifySecretFile string
	verifyModality   string
	verifyStrength   int
	verifyMetaIn     string
)

var verifyCmd = &cobra.Command{
	Use:   "verify <input.png>",
	Short: "Check whether a secret is consistent with an image's watermark",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifySecret, "secret", "", "secret key (or use --secret-file)")
	verifyCmd.Flags().StringVar(&verifySecretFile, "secret-file", "", "file containing the secret key")
	verifyCmd.Flags().StringVar(&verifyModality, "modality", "invisible", "invisible, steganography, or metadata")
	verifyCmd.Flags().IntVar(&verifyStrength, "strength", 80, "strength used at embed time, 0-100")
	verifyCmd.Flags().StringVar(&verifyMetaIn, "metadata-input", "", "path to the metadata sidecar JSON (metadata modality only)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	secret, err := readSecret(verifySecret, verifySecretFile)
	if err != nil {
		return err
	}

	modality := wmproc.Modality(verifyModality)

	var result wmproc.Result
	if modality == wmproc.ModalityMetadata {
		if verifyMetaIn == "" {
			return fmt.Errorf("metadata modality requires --metadata-input")
		}
		data, err := os.ReadFile(verifyMetaIn)
		if err != nil {
			return fmt.Errorf("read %s: %w", verifyMetaIn, err)
		}
		var rec metadata.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("parse %s: %w", verifyMetaIn, err)
		}
		result = wmproc.ExtractMetadata(rec)
	} else {
		img, err := readPNG(args[0])
		if err != nil {
			return err
		}
		result, err = wmproc.Extract(img, secret, modality, verifyStrength)
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}
	}

	if wmproc.VerifyKey(result, secret) {
		fmt.Println("key: valid")
		return nil
	}
	fmt.Println("key: invalid")
	os.Exit(1)
	return nil
}
